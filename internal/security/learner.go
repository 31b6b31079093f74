package security

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const learnerIssuer = "wordsteady"

// ErrInvalidLearnerToken is returned for tokens that are malformed, expired,
// signed with another key, or carry a subject that is not a learner ID
var ErrInvalidLearnerToken = errors.New("invalid learner token")

// NewLearnerID creates a new random learner identifier
func NewLearnerID() string {
	return uuid.New().String()
}

// LearnerTokens signs and verifies the learner cookie value. The cookie only
// names an anonymous browser so its session state can be found again; it
// grants nothing.
type LearnerTokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewLearnerTokens creates a token codec with key, issuing tokens valid for ttl
func NewLearnerTokens(key []byte, ttl time.Duration) *LearnerTokens {
	return &LearnerTokens{key: key, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for learnerID and its expiry
func (t *LearnerTokens) Issue(learnerID string) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    learnerIssuer,
		Subject:   learnerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign learner token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks token and returns the learner ID it carries
func (t *LearnerTokens) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(learnerIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLearnerToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a learner id", ErrInvalidLearnerToken)
	}
	return claims.Subject, nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	// Direct TLS connection
	if r.TLS != nil {
		return true
	}

	// Behind reverse proxy (nginx, Caddy, load balancer, etc.)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	return r.URL.Scheme == "https"
}

// CreateLearnerCookie creates the learner cookie with proper security flags
// The Secure flag is automatically set based on the request scheme (HTTPS detection)
func CreateLearnerCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
