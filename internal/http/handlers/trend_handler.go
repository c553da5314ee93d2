package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/quantifyme-backend/internal/http/middleware"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

// TrendSummaryResponse holds one window per configured length.
type TrendSummaryResponse struct {
	AsOf    string         `json:"as_of,omitempty"`
	Windows []trend.Window `json:"windows"`
}

// ScorePreviewResponse is a scored but unsaved entry.
type ScorePreviewResponse struct {
	Day       string            `json:"day"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// GetTrend godoc
// @ID          getTrend
// @Summary     Trend window
// @Description Summarizes the window days ending at as_of (default today, UTC). Undefined statistics are null.
// @Tags        Trends
// @Produce     json
//
// @Param       X-User-ID  header  string  true   "User ID"                    example(user123)
// @Param       window     query   int     false  "Window length in days"      default(7)
// @Param       as_of      query   string  false  "Last day of the window"     example(2025-03-10)
//
// @Success     200  {object} trend.Window
// @Failure     400  {object} handlers.ErrorResponse "Unsupported window or bad as_of"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /trends [get]
func (h *Handlers) GetTrend(c *gin.Context) {
	length := 7
	if v := c.Query("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			failField(c, http.StatusBadRequest, ErrCodeUnsupportedWindow, "window must be an integer", "window")
			return
		}
		length = n
	}
	w, err := h.trends.Window(c.Request.Context(), middleware.UserID(c), length, c.Query("as_of"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, w)
}

// GetTrendSummary godoc
// @ID          getTrendSummary
// @Summary     All configured trend windows
// @Tags        Trends
// @Produce     json
//
// @Param       X-User-ID  header  string  true   "User ID"                 example(user123)
// @Param       as_of      query   string  false  "Last day of the windows" example(2025-03-10)
//
// @Success     200  {object} handlers.TrendSummaryResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad as_of"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /trends/summary [get]
func (h *Handlers) GetTrendSummary(c *gin.Context) {
	ws, err := h.trends.Summary(c.Request.Context(), middleware.UserID(c), c.Query("as_of"))
	if err != nil {
		failErr(c, err)
		return
	}
	resp := TrendSummaryResponse{Windows: ws}
	if len(ws) > 0 {
		resp.AsOf = ws[0].AsOf
	}
	ok(c, http.StatusOK, resp)
}

// PreviewScore godoc
// @ID          previewScore
// @Summary     Score without saving
// @Description Validates and scores a day using the active profile. Nothing is stored.
// @Tags        Scoring
// @Accept      json
// @Produce     json
//
// @Param       body  body  scoring.RawEntry  true  "Entry payload"
//
// @Success     200  {object} handlers.ScorePreviewResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid input (field named)"
// @Router      /score [post]
func (h *Handlers) PreviewScore(c *gin.Context) {
	var raw scoring.RawEntry
	if err := c.ShouldBindJSON(&raw); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	e, b, err := h.entries.Preview(raw)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ScorePreviewResponse{Day: e.Day(), Breakdown: b})
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Active scoring profile
// @Tags        Scoring
// @Produce     json
// @Success     200  {object} scoring.ProfileSpec
// @Router      /profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	ok(c, http.StatusOK, h.profile.Spec())
}
