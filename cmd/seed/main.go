// Command seed fills a local database with demo users and plausible daily
// entries. It can be re-run safely: days that already exist are skipped.
//
//	go run ./cmd/seed -users 5 -days 30 -gap-rate 0.15 -with-ai
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/config"
	"github.com/tbourn/quantifyme-backend/internal/gateway"
	"github.com/tbourn/quantifyme-backend/internal/repo"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/services"
	"github.com/tbourn/quantifyme-backend/internal/sysutil"
)

const dayLayout = "2006-01-02"

type options struct {
	users       int
	days        int
	end         time.Time
	gapRate     float64
	emailPrefix string
	domain      string
	withAI      bool
}

func main() {
	var (
		opts options
		end  string
	)
	flag.IntVar(&opts.users, "users", 3, "number of users to seed")
	flag.IntVar(&opts.days, "days", 14, "days of history per user")
	flag.StringVar(&end, "end", "", "last seeded day (YYYY-MM-DD, default today UTC)")
	flag.Float64Var(&opts.gapRate, "gap-rate", 0.1, "probability of skipping a day (0..1)")
	flag.StringVar(&opts.emailPrefix, "email-prefix", "user", "email local-part prefix")
	flag.StringVar(&opts.domain, "domain", "example.com", "email domain")
	flag.BoolVar(&opts.withAI, "with-ai", false, "also store an interpretation per entry")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	// The seeder is interactive: always log to the console.
	sysutil.SetupLogger(cfg.LogLevel, true)

	opts.end = time.Now().UTC().Truncate(24 * time.Hour)
	if end != "" {
		if opts.end, err = time.Parse(dayLayout, end); err != nil {
			log.Fatal().Err(err).Str("end", end).Msg("invalid -end")
		}
	}
	if opts.users < 1 || opts.days < 1 || opts.gapRate < 0 || opts.gapRate >= 1 {
		log.Fatal().Msg("need -users >= 1, -days >= 1 and 0 <= -gap-rate < 1")
	}

	profile, err := config.LoadScoringProfile(cfg.ScoringProfilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scoring profile")
	}
	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Path, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	s := seeder{
		db:      db,
		users:   services.NewUserService(db),
		entries: services.NewEntryService(db, scoring.NewEngine(profile, nil), nil),
	}
	if opts.withAI {
		in := gateway.New(cfg.AI, &http.Client{Timeout: cfg.AI.Timeout + time.Second})
		s.interp = services.NewInterpretationService(db, in, cfg.AI.Timeout, cfg.AI.MaxRetries)
		s.interp.PremiumOnly = cfg.AI.PremiumOnly
		s.interp.Budget = cfg.AI.Budget
		if cfg.AI.Locale != "" {
			s.interp.DefaultLocale = gateway.MatchLocale(cfg.AI.Locale)
		}
	}

	log.Info().
		Int("users", opts.users).
		Int("days", opts.days).
		Str("end", opts.end.Format(dayLayout)).
		Float64("gap_rate", opts.gapRate).
		Bool("ai", opts.withAI).
		Msg("seeding")

	created, skipped, err := s.run(context.Background(), opts)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("done")
}

type seeder struct {
	db      *gorm.DB
	users   *services.UserService
	entries *services.EntryService
	interp  *services.InterpretationService
}

func (s seeder) run(ctx context.Context, o options) (created, skipped int, err error) {
	for i := 1; i <= o.users; i++ {
		email := strings.ToLower(fmt.Sprintf("%s%d@%s", o.emailPrefix, i, o.domain))
		u, _, err := s.users.GetOrCreate(ctx, email)
		if err != nil {
			return created, skipped, fmt.Errorf("user %s: %w", email, err)
		}
		// Every third user is premium.
		if u, err = s.users.SetPremium(ctx, u.ID, i%3 == 0); err != nil {
			return created, skipped, fmt.Errorf("premium %s: %w", email, err)
		}
		log.Info().Str("user_id", u.ID).Str("email", u.Email).Bool("premium", u.IsPremium).Msg("user")

		for d := o.days - 1; d >= 0; d-- {
			if rand.Float64() < o.gapRate {
				continue
			}
			day := o.end.AddDate(0, 0, -d).Format(dayLayout)
			exists, err := repo.EntryExists(ctx, s.db, u.ID, day)
			if err != nil {
				return created, skipped, fmt.Errorf("lookup %s %s: %w", email, day, err)
			}
			if exists {
				skipped++
				continue
			}
			sc, err := s.entries.Submit(ctx, u.ID, sampleDay(day))
			if errors.Is(err, services.ErrDuplicateEntry) {
				skipped++
				continue
			}
			if err != nil {
				return created, skipped, fmt.Errorf("entry %s %s: %w", email, day, err)
			}
			created++
			if s.interp != nil {
				res := s.interp.InterpretEntry(ctx, sc.Entry, "")
				log.Debug().Str("day", day).Str("status", res.Status).Str("provider", res.Provider).Msg("interpretation")
			}
		}
	}
	return created, skipped, nil
}

// sampleDay draws one day of self-reports around typical values.
func sampleDay(day string) scoring.RawEntry {
	return scoring.NewRawEntry(day,
		gauss(6.5, 1.6, 0, 10),
		gauss(7.0, 1.2, 4, 9),
		gauss(4.0, 2.0, 0, 10),
		gauss(6.0, 1.8, 0, 10),
	)
}

func gauss(mean, sd, lo, hi float64) float64 {
	v := mean + sd*rand.NormFloat64()
	v = math.Max(lo, math.Min(hi, v))
	return math.Round(v*10) / 10
}
