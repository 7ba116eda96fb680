package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/transport/http/middleware"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/session"
	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// ProfileHandler exposes profile maintenance for the authenticated user.
// Every route sits behind RequireSession.
type ProfileHandler struct {
	users    *usecase.UserService
	sessions *session.Manager
}

// NewProfileHandler builds the profile handler.
func NewProfileHandler(users *usecase.UserService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{users: users, sessions: sessions}
}

// RegisterRoutes mounts the profile endpoints.
func (h *ProfileHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.PUT("", h.Update)
	group.PUT("/password", h.ChangePassword)
	group.DELETE("", h.DeleteAccount)
}

// Update rewrites name and email. The session cookie is overwritten with the
// re-minted token so the embedded email snapshot stays current.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	user, token, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "Email already exists."},
			{Err: usecase.ErrSessionRequired, Status: http.StatusUnauthorized, Message: "authentication required"},
		}, http.StatusInternalServerError, "Unable to update profile.")
		return
	}

	h.sessions.Write(c, token)
	c.JSON(http.StatusOK, NewUserResponse(user))
}

// ChangePassword verifies the current password and overwrites the digest.
// The session token is untouched; it carries no password material.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrSessionRequired, Status: http.StatusUnauthorized, Message: "authentication required"},
		}, http.StatusInternalServerError, "Unable to change password.")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAccount re-authenticates with the password, removes the account, and
// clears the session cookie. Irreversible.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrSessionRequired, Status: http.StatusUnauthorized, Message: "authentication required"},
		}, http.StatusInternalServerError, "Unable to delete account.")
		return
	}

	h.sessions.Clear(c)
	c.JSON(http.StatusOK, RedirectResponse{Redirect: "/login"})
}
