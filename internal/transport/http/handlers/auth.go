package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/transport/http/session"
	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// AuthHandler exposes signup, login, logout, and identity resolution.
type AuthHandler struct {
	auth         *usecase.AuthService
	registration *usecase.RegistrationService
	sessions     *session.Manager
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(auth *usecase.AuthService, registration *usecase.RegistrationService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration, sessions: sessions}
}

// RegisterRoutes mounts the auth endpoints. The rate-limit middlewares guard
// the credential-bearing routes only.
func (h *AuthHandler) RegisterRoutes(group *gin.RouterGroup, loginLimit, registerLimit []gin.HandlerFunc) {
	register := append([]gin.HandlerFunc{}, registerLimit...)
	group.POST("/register", append(register, h.Register)...)

	login := append([]gin.HandlerFunc{}, loginLimit...)
	group.POST("/login", append(login, h.Login)...)

	group.POST("/logout", h.Logout)
}

// Register creates an account. No session is issued; the client navigates to
// the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if _, err := h.registration.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "Email already exists."},
		}, http.StatusInternalServerError, "Unable to create account.")
		return
	}

	c.JSON(http.StatusCreated, RedirectResponse{Redirect: "/login"})
}

// Login verifies credentials and sets the session cookie. Every failure mode
// yields the same message so responses never reveal whether an email is
// registered.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "These credentials do not match our records."},
		}, http.StatusInternalServerError, "Unable to log in.")
		return
	}

	h.sessions.Write(c, token)
	c.JSON(http.StatusOK, LoginResponse{Redirect: "/task", User: NewUserResponse(user)})
}

// Logout clears the session cookie. Idempotent: a request without a session
// succeeds the same way.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, RedirectResponse{Redirect: "/login"})
}

// Me resolves the session cookie into the current identity. Anonymous
// requests get a null user, never an error.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := h.auth.CurrentUser(c.Request.Context(), h.sessions.Read(c))
	if identity.Anonymous() {
		c.JSON(http.StatusOK, MeResponse{})
		return
	}

	user := NewUserResponse(identity.User)
	c.JSON(http.StatusOK, MeResponse{User: &user})
}
