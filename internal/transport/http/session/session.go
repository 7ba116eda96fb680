package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/infra/security"
)

// CookieName is the session cookie. The raw value is the signed token.
const CookieName = "token"

// Manager owns the session cookie attributes. The cookie is HttpOnly and
// SameSite=Lax always; Secure only in production so local development over
// plain HTTP keeps working.
type Manager struct {
	codec  *security.SessionCodec
	secure bool
}

// NewManager constructs a cookie manager around the token codec.
func NewManager(codec *security.SessionCodec, secure bool) *Manager {
	return &Manager{codec: codec, secure: secure}
}

// Issue mints a token for the user and writes the session cookie.
func (m *Manager) Issue(c *gin.Context, userID, email string) error {
	token, err := m.codec.Mint(userID, email)
	if err != nil {
		return err
	}

	m.Write(c, token)
	return nil
}

// Write sets the session cookie to an already-minted token. Used after
// profile updates, where the usecase re-mints so the embedded email snapshot
// stays current.
func (m *Manager) Write(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.codec.TTL().Seconds()), "/", "", m.secure, true)
}

// Read returns the raw token from the request cookie, empty when absent.
func (m *Manager) Read(c *gin.Context) string {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// Verify decodes a raw token through the underlying codec.
func (m *Manager) Verify(token string) (*security.SessionClaims, error) {
	return m.codec.Verify(token)
}

// Clear expires the cookie immediately. Safe to call with no session present.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
