package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CSRFGenerator generates and validates CSRF tokens using HMAC-SHA256.
// Tokens are derived from the learner ID and a key, so no server-side state
// is kept and any replica can check them.
type CSRFGenerator struct {
	key []byte
}

// NewCSRFGenerator creates a new stateless HMAC-based CSRF generator.
func NewCSRFGenerator(key []byte) *CSRFGenerator {
	return &CSRFGenerator{key: key}
}

// GenerateToken returns the CSRF token for the given learner ID.
func (g *CSRFGenerator) GenerateToken(learnerID string) (string, error) {
	if learnerID == "" {
		return "", fmt.Errorf("learner ID is required")
	}
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte("csrf:"))
	mac.Write([]byte(learnerID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidateToken reports whether token is the valid CSRF token for learnerID.
func (g *CSRFGenerator) ValidateToken(learnerID, token string) bool {
	if learnerID == "" || token == "" {
		return false
	}
	expected, err := g.GenerateToken(learnerID)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(token))
}
