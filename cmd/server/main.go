// Command server runs the QuantifyMe HTTP API.
//
//	@title			QuantifyMe API
//	@version		1.0
//	@description	Daily self-reports scored into a Daily Cognitive Score, with trends and interpretations.
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/config"
	"github.com/tbourn/quantifyme-backend/internal/gateway"
	httpapi "github.com/tbourn/quantifyme-backend/internal/http"
	"github.com/tbourn/quantifyme-backend/internal/observability"
	"github.com/tbourn/quantifyme-backend/internal/repo"
	"github.com/tbourn/quantifyme-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const idempotencyPurgeEvery = 10 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	profile, err := config.LoadScoringProfile(cfg.ScoringProfilePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ScoringProfilePath).Msg("invalid scoring profile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version))
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Path, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	trendCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("trend cache unavailable; continuing without it")
		trendCache = cache.Noop{}
	}
	if c, ok := trendCache.(io.Closer); ok {
		defer c.Close()
	}

	interpreter := gateway.New(cfg.AI, &http.Client{Timeout: cfg.AI.Timeout + time.Second})

	r := gin.New()
	idem := httpapi.RegisterRoutes(r, db, httpapi.Deps{
		Profile:     profile,
		Interpreter: interpreter,
		Cache:       trendCache,
	}, cfg)

	go purgeIdempotency(ctx, idem.Purge)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("provider", interpreter.Name()).
			Str("cache", cfg.Cache.Backend).
			Ints("windows", profile.Windows()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}

// purgeIdempotency deletes expired idempotency records until ctx ends.
func purgeIdempotency(ctx context.Context, purge func(context.Context) (int64, error)) {
	t := time.NewTicker(idempotencyPurgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("idempotency purge")
			}
		}
	}
}
