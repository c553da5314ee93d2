package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest is the JSON payload for get-or-create by email.
type CreateUserRequest struct {
	Email TrimmedString `json:"email" binding:"required,email" swaggertype:"string" example:"jane@example.com"`
}

// PremiumRequest toggles the premium flag.
type PremiumRequest struct {
	IsPremium *bool `json:"is_premium" binding:"required" example:"true"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Get or create a user
// @Description Normalizes the email (trimmed, lowercased) and returns the matching account, creating it on first use.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateUserRequest  true  "Email"
// @Success     201  {object} domain.User "Created"
// @Success     200  {object} domain.User "Existing"
// @Failure     400  {object} handlers.ErrorResponse "Invalid email"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	u, created, err := h.users.GetOrCreate(c.Request.Context(), string(req.Email))
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, u)
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
// @Param       id  path  string  true  "User ID"  format(uuid)
// @Success     200  {object} domain.User
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// SetPremium godoc
// @ID          setPremium
// @Summary     Toggle premium
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       id    path  string                   true  "User ID"  format(uuid)
// @Param       body  body  handlers.PremiumRequest  true  "Flag"
// @Success     200  {object} domain.User
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /users/{id}/premium [put]
func (h *Handlers) SetPremium(c *gin.Context) {
	var req PremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	u, err := h.users.SetPremium(c.Request.Context(), c.Param("id"), *req.IsPremium)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
