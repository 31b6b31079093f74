package handlers

import (
	"context"
	"net/http"
	"time"

	"wordsteady/internal/logger"
	"wordsteady/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	LearnerContextKey ContextKey = "learner"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.LearnerTokens
	csrf    *security.CSRFGenerator
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance. limiter may be nil to
// disable rate limiting.
func NewMiddleware(tokens *security.LearnerTokens, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		csrf:    csrf,
		limiter: limiter,
	}
}

// Learner resolves the learner behind the request from the signed learner
// cookie, issuing a fresh identity when the cookie is missing or invalid
func (m *Middleware) Learner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var learnerID string
		if cookie, err := r.Cookie(LearnerCookieName); err == nil {
			id, err := m.tokens.Verify(cookie.Value)
			if err == nil {
				learnerID = id
			} else {
				logger.Debug("discarding learner cookie", "err", err)
			}
		}

		if learnerID == "" {
			learnerID = security.NewLearnerID()
			token, expires, err := m.tokens.Issue(learnerID)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrNoLearner, "Error issuing learner cookie", err)
				return
			}
			http.SetCookie(w, security.CreateLearnerCookie(r, LearnerCookieName, token, expires))
			logger.Debug("issued learner cookie", "learner", learnerID)
		}

		ctx := context.WithValue(r.Context(), LearnerContextKey, learnerID)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects form posts whose token does not belong to the learner.
// Must run inside Learner.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		learnerID := GetLearnerFromContext(r.Context())
		if !m.csrf.ValidateToken(learnerID, r.FormValue(CSRFFieldName)) {
			logger.Warn("csrf validation failed", "path", r.URL.Path, "ip", security.GetClientIP(r))
			http.Error(w, ErrInvalidCSRFToken, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil {
			ip := security.GetClientIP(r)
			if !m.limiter.Allow(ip) {
				logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
				return
			}
		}
		next(w, r)
	}
}

// CSRFToken returns the form token for the learner on r, or "" when none
func (m *Middleware) CSRFToken(r *http.Request) string {
	token, err := m.csrf.GenerateToken(GetLearnerFromContext(r.Context()))
	if err != nil {
		return ""
	}
	return token
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// GetLearnerFromContext retrieves the learner ID from the request context
func GetLearnerFromContext(ctx context.Context) string {
	id, ok := ctx.Value(LearnerContextKey).(string)
	if !ok {
		return ""
	}
	return id
}
