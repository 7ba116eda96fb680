package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSessionToken indicates the token is malformed, carries a bad
	// signature, or was signed with a different secret.
	ErrInvalidSessionToken = errors.New("invalid session token")
	// ErrExpiredSessionToken indicates the token's validity window has passed.
	ErrExpiredSessionToken = errors.New("session token expired")
)

// DefaultSessionTTL is the validity window applied when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims is the payload embedded in the session cookie. The email is a
// snapshot taken at mint time; profile updates re-mint the token so the
// snapshot never outlives an email change.
type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"eml"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session tokens with a process-wide HMAC
// secret. Verification is pure: no I/O, no server-side state.
type SessionCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCodec constructs a codec for the supplied secret.
func NewSessionCodec(secret []byte, issuer string, ttl time.Duration) (*SessionCodec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session codec: secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionCodec{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the configured validity window.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Mint signs a session token embedding the user id and email.
func (c *SessionCodec) Mint(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("session codec: user id is required")
	}

	now := c.now().UTC()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session codec: sign token: %w", err)
	}

	return signed, nil
}

// Verify validates the signature and validity window and returns the decoded
// claims. There is no partial validity: any mismatch in payload, signature,
// or secret rejects the whole token.
func (c *SessionCodec) Verify(token string) (*SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSessionToken
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer), jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSessionToken
		}
		return nil, ErrInvalidSessionToken
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidSessionToken
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrInvalidSessionToken
	}

	return claims, nil
}
