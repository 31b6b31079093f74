package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const minSecretLen = 16

// Keys holds the per-purpose keys derived from the server secret
type Keys struct {
	Learner []byte
	CSRF    []byte
}

// DeriveKeys expands one secret into independent signing keys for the
// learner cookie and CSRF tokens
func DeriveKeys(secret string) (Keys, error) {
	if len(secret) < minSecretLen {
		return Keys{}, fmt.Errorf("secret must be at least %d characters", minSecretLen)
	}
	learner, err := expand(secret, "wordsteady learner cookie v1")
	if err != nil {
		return Keys{}, err
	}
	csrf, err := expand(secret, "wordsteady csrf v1")
	if err != nil {
		return Keys{}, err
	}
	return Keys{Learner: learner, CSRF: csrf}, nil
}

func expand(secret, info string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// GenerateSecret returns a random hex secret suitable for SESSION_SECRET
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
