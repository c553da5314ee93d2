package handlers

import (
	"math"
	"net/http"
	"testing"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

func TestGetTrend(t *testing.T) {
	r := newTestRouter(t)
	u := asUser("u1")

	w := do(t, r, call{http.MethodGet, "/api/v1/trends?window=7&as_of=2025-03-10", nil, u})
	empty := decode[trend.Window](t, w)
	if w.Code != http.StatusOK || empty.ActualCount != 0 || empty.Mean != nil || empty.Direction != "undefined" {
		t.Fatalf("empty window = %d %s", w.Code, w.Body.String())
	}

	do(t, r, call{http.MethodPost, "/api/v1/entries", entryBody("2025-03-08", 0, 0, 10, 0), u})
	do(t, r, call{http.MethodPost, "/api/v1/entries", entryBody("2025-03-10", 10, 24, 0, 10), u})

	w = do(t, r, call{http.MethodGet, "/api/v1/trends?window=7&as_of=2025-03-10", nil, u})
	got := decode[trend.Window](t, w)
	if w.Code != http.StatusOK || got.ActualCount != 2 || got.ExpectedCount != 7 || *got.Mean != 50 || got.Direction != "up" {
		t.Fatalf("window = %d %s", w.Code, w.Body.String())
	}

	// defaults: window 7, as_of today
	w = do(t, r, call{http.MethodGet, "/api/v1/trends", nil, u})
	if def := decode[trend.Window](t, w); w.Code != http.StatusOK || def.Length != 7 || def.AsOf != "2025-03-10" {
		t.Fatalf("defaults = %d %s", w.Code, w.Body.String())
	}

	for path, want := range map[string][2]string{
		"/api/v1/trends?window=5":      {ErrCodeUnsupportedWindow, "window"},
		"/api/v1/trends?window=week":   {ErrCodeUnsupportedWindow, "window"},
		"/api/v1/trends?as_of=2025-13": {ErrCodeValidation, "as_of"},
	} {
		w := do(t, r, call{http.MethodGet, path, nil, u})
		er := decode[ErrorResponse](t, w)
		if w.Code != http.StatusBadRequest || er.Code != want[0] || er.Field != want[1] {
			t.Fatalf("%s = %d %+v", path, w.Code, er)
		}
	}
}

func TestGetTrendSummary(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, call{http.MethodGet, "/api/v1/trends/summary?as_of=2025-03-10", nil, asUser("u1")})
	got := decode[TrendSummaryResponse](t, w)
	if w.Code != http.StatusOK || len(got.Windows) != 2 || got.Windows[0].Length != 7 || got.Windows[1].Length != 30 || got.AsOf != "2025-03-10" {
		t.Fatalf("summary = %d %s", w.Code, w.Body.String())
	}
}

func TestPreviewScoreAndProfile(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, call{http.MethodPost, "/api/v1/score", entryBody("2025-03-07", 7, 8, 3, 6), nil})
	got := decode[ScorePreviewResponse](t, w)
	if w.Code != http.StatusOK || got.Day != "2025-03-07" || got.Breakdown.Composite != 58.7 {
		t.Fatalf("preview = %d %s", w.Code, w.Body.String())
	}
	if math.Abs(got.Breakdown.Components[scoring.Stress]-0.7) > 1e-9 {
		t.Fatalf("stress must be inverted: %v", got.Breakdown.Components)
	}
	w = do(t, r, call{http.MethodPost, "/api/v1/score", entryBody("2025-03-07", 7, 25, 3, 6), nil})
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Field != "sleep_hours" {
		t.Fatalf("invalid preview = %d %s", w.Code, w.Body.String())
	}
	// preview never persists
	if w := do(t, r, call{http.MethodGet, "/api/v1/entries/2025-03-07", nil, asUser("u1")}); w.Code != http.StatusNotFound {
		t.Fatalf("preview stored an entry")
	}

	w = do(t, r, call{http.MethodGet, "/api/v1/profile", nil, nil})
	spec := decode[scoring.ProfileSpec](t, w)
	if w.Code != http.StatusOK || spec.Weights["focus"] != 0.4 || len(spec.Windows) != 2 {
		t.Fatalf("profile = %d %s", w.Code, w.Body.String())
	}
}
