package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/http/middleware"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/services"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.User{}, &domain.Entry{}, &domain.Interpretation{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter wires real services over an in-memory DB and mounts the
// handlers the same way the production router does.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	profile := scoring.DefaultProfile()
	mem := cache.NewMemory(64, time.Minute)

	entries := services.NewEntryService(db, scoring.NewEngine(profile, func() time.Time { return fixedNow }), mem)
	trends := services.NewTrendService(db, profile, mem)
	trends.Now = func() time.Time { return fixedNow }
	interp := services.NewInterpretationService(db, nil, time.Second, 0)
	idem := services.NewIdempotencyService(db, time.Hour)

	h := New(Deps{
		Entries:        entries,
		Trends:         trends,
		Interpretation: interp,
		Users:          services.NewUserService(db),
		Idempotency:    idem,
		Profile:        profile,
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity(),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, idem.Exists))

	api := r.Group("/api/v1")
	api.POST("/score", h.PreviewScore)
	api.GET("/profile", h.GetProfile)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id/premium", h.SetPremium)

	mine := api.Group("", middleware.RequireUser())
	mine.POST("/entries", h.CreateEntry)
	mine.GET("/entries", h.ListEntries)
	mine.GET("/entries/latest", h.LatestEntries)
	mine.GET("/entries/:day", h.GetEntry)
	mine.PUT("/entries/:day", h.CorrectEntry)
	mine.DELETE("/entries/:day", h.DeleteEntry)
	mine.GET("/entries/:day/versions", h.ListVersions)
	mine.POST("/entries/:day/interpretation", h.Interpret)
	mine.GET("/trends", h.GetTrend)
	mine.GET("/trends/summary", h.GetTrendSummary)
	return r
}

type call struct {
	method, path string
	body         any
	headers      map[string]string
}

func do(t *testing.T, r http.Handler, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asUser(id string) map[string]string { return map[string]string{"X-User-ID": id} }

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v\nbody: %s", v, err, w.Body.String())
	}
	return v
}

func entryBody(day string, mood, sleep, stress, focus float64) map[string]any {
	return map[string]any{"date": day, "mood": mood, "sleep_hours": sleep, "stress": stress, "focus": focus}
}
