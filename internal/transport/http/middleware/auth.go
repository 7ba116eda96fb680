package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/infra/security"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/session"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newErrorResponse(c *gin.Context, msg string) errorResponse {
	return errorResponse{Error: msg, RequestID: GetRequestID(c)}
}

// RequireSession decodes the session cookie and exposes the claims to
// handlers. It does not touch storage: a valid signature inside the validity
// window is enough to proceed, and the usecase layer re-checks the row where
// it matters. Requests without a usable token are rejected with 401.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessions.Read(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "authentication required"))
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "authentication required"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(SessionClaimsKey, claims)

		c.Next()
	}
}

// AuthenticatedUserID retrieves the user id placed by RequireSession.
func AuthenticatedUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// SessionClaims retrieves the decoded claims placed by RequireSession.
func SessionClaims(c *gin.Context) (*security.SessionClaims, bool) {
	if v, ok := c.Get(SessionClaimsKey); ok {
		if claims, ok := v.(*security.SessionClaims); ok {
			return claims, true
		}
	}
	return nil, false
}
