package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signer mints and verifies download tokens for stored artifacts. A token
// binds an artifact name to an expiry timestamp under an HMAC-SHA256
// signature, so the download route can serve files without any session
// state.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner builds a Signer; a non-positive ttl falls back to 24 hours.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign returns a token granting access to name until the signer's TTL
// elapses, together with the expiry time.
func (s *Signer) Sign(name string) (string, time.Time, error) {
	if name == "" {
		return "", time.Time{}, errors.New("storage: artifact name required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("storage: signing secret missing")
	}
	expires := time.Now().Add(s.ttl)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(name))
	stamp := strconv.FormatInt(expires.Unix(), 10)
	token := encoded + "." + stamp + "." + s.digest(encoded, stamp)
	return token, expires, nil
}

// Verify checks a token's signature and expiry and returns the artifact
// name it grants access to.
func (s *Signer) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", errors.New("storage: malformed token")
	}
	encoded, stamp, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(s.digest(encoded, stamp)), []byte(signature)) {
		return "", errors.New("storage: token signature mismatch")
	}

	expires, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return "", errors.New("storage: malformed token expiry")
	}
	if time.Now().After(time.Unix(expires, 0)) {
		return "", errors.New("storage: token expired")
	}

	name, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("storage: decode artifact name: %w", err)
	}
	return string(name), nil
}

func (s *Signer) digest(encoded, stamp string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s", encoded, stamp)
	return hex.EncodeToString(mac.Sum(nil))
}
