// Package auth verifies API keys presented by catalog API clients.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/go-faster/errors"
)

// ErrUnauthorized is returned for a missing or unknown API key.
var ErrUnauthorized = errors.New("unauthorized")

// HashKey returns the hex HMAC-SHA256 of key under pepper. This is the form
// in which keys are configured.
func HashKey(pepper []byte, key string) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// KeySet holds the hashes of every accepted API key.
type KeySet struct {
	pepper []byte
	hashes [][]byte
}

// NewKeySet parses hex-encoded key hashes.
func NewKeySet(pepper []byte, hexHashes []string) (*KeySet, error) {
	ks := &KeySet{pepper: pepper}
	for i, h := range hexHashes {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.Wrapf(err, "decode key hash #%d", i)
		}
		if len(b) != sha256.Size {
			return nil, errors.Errorf("key hash #%d: want %d bytes, got %d", i, sha256.Size, len(b))
		}
		ks.hashes = append(ks.hashes, b)
	}
	return ks, nil
}

// Enabled reports whether any key is configured. An empty set accepts
// every request.
func (ks *KeySet) Enabled() bool {
	return ks != nil && len(ks.hashes) > 0
}

// Verify checks key against every configured hash in constant time.
func (ks *KeySet) Verify(key string) error {
	if !ks.Enabled() {
		return nil
	}
	if key == "" {
		return ErrUnauthorized
	}

	mac := hmac.New(sha256.New, ks.pepper)
	mac.Write([]byte(key))
	sum := mac.Sum(nil)

	match := 0
	for _, h := range ks.hashes {
		match |= subtle.ConstantTimeCompare(sum, h)
	}
	if match != 1 {
		return ErrUnauthorized
	}
	return nil
}
