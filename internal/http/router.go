// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/quantifyme-backend/docs" // registers the OpenAPI document
	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/config"
	"github.com/tbourn/quantifyme-backend/internal/gateway"
	"github.com/tbourn/quantifyme-backend/internal/http/handlers"
	"github.com/tbourn/quantifyme-backend/internal/http/middleware"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/services"
)

const maxBodyBytes = 64 << 10

// Deps carries the long-lived collaborators built at startup.
type Deps struct {
	Profile     *scoring.Profile
	Interpreter gateway.Interpreter // nil means the local stub
	Cache       cache.TrendCache    // nil disables trend caching
	Now         func() time.Time    // nil means time.Now
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the idempotency service so the caller can purge it.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID + Identity: correlation id and caller
//  3. AccessLog: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS, security headers, optional gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps, cfg config.Config) *services.IdempotencyService {
	r.HandleMethodNotAllowed = true

	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	profile := deps.Profile
	if profile == nil {
		profile = scoring.DefaultProfile()
	}

	idem := services.NewIdempotencyService(db, cfg.IdempotencyTTL)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID(), middleware.Identity())
	r.Use(middleware.AccessLog(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Exists))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	r.Use(corsHandlers(cfg.CORS)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
		Expose:       []string{"ETag", "Retry-After", handlers.HeaderIdempotentReplay},
	}))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/profile/gateway/cache
	entries := services.NewEntryService(db, scoring.NewEngine(profile, now), deps.Cache)
	trends := services.NewTrendService(db, profile, deps.Cache)
	trends.Now = now
	interp := services.NewInterpretationService(db, deps.Interpreter, cfg.AI.Timeout, cfg.AI.MaxRetries)
	interp.PremiumOnly = cfg.AI.PremiumOnly
	interp.Budget = cfg.AI.Budget
	if cfg.AI.Locale != "" {
		interp.DefaultLocale = gateway.MatchLocale(cfg.AI.Locale)
	}

	h := handlers.New(handlers.Deps{
		Entries:        entries,
		Trends:         trends,
		Interpretation: interp,
		Users:          services.NewUserService(db),
		Idempotency:    idem,
		Profile:        profile,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/score", h.PreviewScore)
		api.GET("/profile", h.GetProfile)

		api.POST("/users", h.CreateUser)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id/premium", h.SetPremium)
	}

	mine := api.Group("", middleware.RequireUser())
	{
		// Entries
		mine.POST("/entries", h.CreateEntry)
		mine.GET("/entries", h.ListEntries)
		mine.GET("/entries/latest", h.LatestEntries)
		mine.GET("/entries/:day", h.GetEntry)
		mine.PUT("/entries/:day", h.CorrectEntry)
		mine.DELETE("/entries/:day", h.DeleteEntry)
		mine.GET("/entries/:day/versions", h.ListVersions)
		mine.POST("/entries/:day/interpretation", h.Interpret)

		// Trends
		mine.GET("/trends", h.GetTrend)
		mine.GET("/trends/summary", h.GetTrendSummary)
	}
	return idem
}

// corsHandlers returns the CORS posture: allow all origins when none are
// configured, otherwise echo allowlisted origins.
func corsHandlers(cfg config.CORSConfig) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "If-None-Match",
			middleware.HeaderUserID, middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Retry-After", handlers.HeaderIdempotentReplay},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO: * even without an Origin header, for simple health checks.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = cfg.AllowedOrigins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body at maxBytes; larger bodies fail to read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
