// Entry HTTP handlers.
//
// This file exposes REST endpoints for daily entries:
//   - POST   /entries                       (submit, idempotent with Idempotency-Key)
//   - PUT    /entries/{day}                 (correct: append a version)
//   - GET    /entries                       (range with KPIs, ETag support)
//   - GET    /entries/latest                (most recent days)
//   - GET    /entries/{day}                 (current version)
//   - GET    /entries/{day}/versions        (all versions)
//   - DELETE /entries/{day}                 (remove a day)
//   - POST   /entries/{day}/interpretation  (interpret the current version)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/http/middleware"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/services"
	"github.com/tbourn/quantifyme-backend/internal/sysutil"
	"github.com/tbourn/quantifyme-backend/internal/utils"
)

// HeaderIdempotentReplay marks a response served from a stored result.
const HeaderIdempotentReplay = "Idempotency-Replayed"

const (
	defaultLatest = 7
	maxLatest     = 366
)

//
// DTOs
//

// EntryRequest is the JSON payload for submitting a day. Numeric fields
// accept JSON numbers or numeric strings.
type EntryRequest struct {
	scoring.RawEntry
	// Interpret requests an interpretation of the stored entry in the same call.
	Interpret bool `json:"interpret" example:"false"`
}

// EntryResponse is a stored entry version with its score breakdown.
type EntryResponse struct {
	Entry          *domain.Entry             `json:"entry"`
	Breakdown      scoring.Breakdown         `json:"breakdown"`
	Interpretation *services.InterpretResult `json:"interpretation,omitempty"`
}

// ListEntriesResponse wraps a date range of entries and its KPIs.
type ListEntriesResponse struct {
	Entries []domain.Entry `json:"entries"`
	KPIs    services.KPIs  `json:"kpis"`
}

// EntriesResponse wraps a plain list of entries.
type EntriesResponse struct {
	Entries []domain.Entry `json:"entries"`
}

// VersionsResponse lists every version of one day, oldest first.
type VersionsResponse struct {
	Day      string         `json:"day"`
	Versions []domain.Entry `json:"versions"`
}

func responseOf(s *services.Scored) EntryResponse {
	return EntryResponse{Entry: s.Entry, Breakdown: s.Breakdown}
}

func emptyIfNil(rows []domain.Entry) []domain.Entry {
	if rows == nil {
		return []domain.Entry{}
	}
	return rows
}

//
// Handlers
//

// CreateEntry godoc
// @ID          createEntry
// @Summary     Submit a daily entry
// @Description Validates, scores and stores version 1 of a day. A repeated Idempotency-Key replays the stored result.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  true   "User ID"              example(user123)
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"       example(7c1d-2025-03-07)
// @Param       Accept-Language  header  string  false  "Interpretation locale" example(fr)
// @Param       body             body    handlers.EntryRequest  true  "Entry payload"
//
// @Success     201  {object}  handlers.EntryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid input (field named)"
// @Failure     409  {object}  handlers.ErrorResponse  "Day already recorded"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries [post]
func (h *Handlers) CreateEntry(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	scope := c.FullPath()
	key, hasKey := middleware.GetIdempotencyKey(c)

	if hasKey && h.idem != nil {
		if rec, err := h.idem.Lookup(ctx, uid, scope, key); err == nil {
			if prev, err := h.entries.ByID(ctx, uid, rec.ResourceID); err == nil {
				c.Header(HeaderIdempotentReplay, "true")
				ok(c, rec.Status, responseOf(prev))
				return
			}
		}
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	s, err := h.entries.Submit(ctx, uid, req.RawEntry)
	if err != nil {
		failErr(c, err)
		return
	}
	if hasKey && h.idem != nil {
		if err := h.idem.Remember(ctx, uid, scope, key, s.Entry.ID, http.StatusCreated); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	resp := responseOf(s)
	if req.Interpret && h.interp != nil {
		resp.Interpretation = h.interp.InterpretEntry(ctx, s.Entry, c.GetHeader("Accept-Language"))
	}
	ok(c, http.StatusCreated, resp)
}

// CorrectEntry godoc
// @ID          correctEntry
// @Summary     Correct a daily entry
// @Description Appends a new version for an existing day. The path day overrides any date in the body.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       day        path    string  true  "Day (YYYY-MM-DD)"  example(2025-03-07)
// @Param       body       body    handlers.EntryRequest  true  "Corrected values"
//
// @Success     200  {object}  handlers.EntryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid input (field named)"
// @Failure     404  {object}  handlers.ErrorResponse  "Day not recorded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries/{day} [put]
func (h *Handlers) CorrectEntry(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	s, err := h.entries.Correct(ctx, middleware.UserID(c), c.Param("day"), req.RawEntry)
	if err != nil {
		failErr(c, err)
		return
	}
	resp := responseOf(s)
	if req.Interpret && h.interp != nil {
		resp.Interpretation = h.interp.InterpretEntry(ctx, s.Entry, c.GetHeader("Accept-Language"))
	}
	ok(c, http.StatusOK, resp)
}

// ListEntries godoc
// @ID          listEntries
// @Summary     List entries in a date range
// @Description Returns the current version of each day in [from, to] with count, mean and max composite. Supports weak ETag via If-None-Match.
// @Tags        Entries
// @Produce     json
//
// @Param       X-User-ID      header  string  true   "User ID"                     example(user123)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       from           query   string  false  "First day (inclusive)"       example(2025-03-01)
// @Param       to             query   string  false  "Last day (inclusive)"        example(2025-03-31)
// @Param       order          query   string  false  "asc or desc"                 Enums(asc, desc) default(asc)
//
// @Success     200  {object} handlers.ListEntriesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /entries [get]
func (h *Handlers) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	from, to, order := c.Query("from"), c.Query("to"), c.Query("order")

	desc, valid := utils.ParseOrder(order)
	if !valid {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, "order must be asc or desc", "order")
		return
	}

	// ETag pre-check (best effort).
	if count, tag, err := h.entries.Stats(ctx, uid); err == nil {
		etag := fmt.Sprintf(`W/"entries:%s:%d:%s:%s:%s:%t"`, uid, count, tag, from, to, desc)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	hist, err := h.entries.List(ctx, uid, from, to, desc)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListEntriesResponse{Entries: emptyIfNil(hist.Entries), KPIs: hist.KPIs})
}

// LatestEntries godoc
// @ID          latestEntries
// @Summary     Most recent entries
// @Tags        Entries
// @Produce     json
//
// @Param       X-User-ID  header  string  true   "User ID"        example(user123)
// @Param       n          query   int     false  "Number of days" minimum(1) maximum(366) default(7)
//
// @Success     200  {object} handlers.EntriesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /entries/latest [get]
func (h *Handlers) LatestEntries(c *gin.Context) {
	n := utils.AtoiDefault(c.Query("n"), defaultLatest)
	if n < 1 {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, "n must be a positive integer", "n")
		return
	}
	rows, err := h.entries.Latest(c.Request.Context(), middleware.UserID(c), utils.Clamp(n, 1, maxLatest))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, EntriesResponse{Entries: emptyIfNil(rows)})
}

// GetEntry godoc
// @ID          getEntry
// @Summary     Current version of a day
// @Tags        Entries
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"           example(user123)
// @Param       day        path    string  true  "Day (YYYY-MM-DD)"  example(2025-03-07)
//
// @Success     200  {object} handlers.EntryResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid day"
// @Failure     404  {object} handlers.ErrorResponse "Day not recorded"
// @Router      /entries/{day} [get]
func (h *Handlers) GetEntry(c *gin.Context) {
	e, err := h.entries.Get(c.Request.Context(), middleware.UserID(c), c.Param("day"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, EntryResponse{Entry: e, Breakdown: services.BreakdownOf(e)})
}

// ListVersions godoc
// @ID          listEntryVersions
// @Summary     All versions of a day
// @Tags        Entries
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"           example(user123)
// @Param       day        path    string  true  "Day (YYYY-MM-DD)"  example(2025-03-07)
//
// @Success     200  {object} handlers.VersionsResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid day"
// @Failure     404  {object} handlers.ErrorResponse "Day not recorded"
// @Router      /entries/{day}/versions [get]
func (h *Handlers) ListVersions(c *gin.Context) {
	day := c.Param("day")
	rows, err := h.entries.Versions(c.Request.Context(), middleware.UserID(c), day)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, VersionsResponse{Day: day, Versions: rows})
}

// DeleteEntry godoc
// @ID          deleteEntry
// @Summary     Delete a day
// @Description Removes every version of the day and its interpretations.
// @Tags        Entries
//
// @Param       X-User-ID  header  string  true  "User ID"           example(user123)
// @Param       day        path    string  true  "Day (YYYY-MM-DD)"  example(2025-03-07)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid day"
// @Failure     404  {object} handlers.ErrorResponse "Day not recorded"
// @Router      /entries/{day} [delete]
func (h *Handlers) DeleteEntry(c *gin.Context) {
	if err := h.entries.Delete(c.Request.Context(), middleware.UserID(c), c.Param("day")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// Interpret godoc
// @ID          interpretEntry
// @Summary     Interpret a day
// @Description Returns an interpretation of the current version. A stored one is reused (status "cached") unless refresh is set. When the provider fails the status is "unavailable" and the text is local advice.
// @Tags        Entries
// @Produce     json
//
// @Param       X-User-ID        header  string  true   "User ID"            example(user123)
// @Param       Accept-Language  header  string  false  "Locale (en or fr)"  example(fr-FR)
// @Param       day              path    string  true   "Day (YYYY-MM-DD)"   example(2025-03-07)
// @Param       refresh          query   bool    false  "Ignore stored interpretation"
//
// @Success     200  {object} services.InterpretResult
// @Failure     400  {object} handlers.ErrorResponse "Invalid day"
// @Failure     404  {object} handlers.ErrorResponse "Day not recorded"
// @Router      /entries/{day}/interpretation [post]
func (h *Handlers) Interpret(c *gin.Context) {
	res, err := h.interp.Interpret(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("day"),
		c.GetHeader("Accept-Language"),
		sysutil.IsTruthy(c.Query("refresh")),
	)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
