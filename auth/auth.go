// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/danielhkuo/quickly-elect/election"
)

// Header names carrying the caller identity and its key
const (
	HeaderCallerID  = "X-Caller-ID"
	HeaderCallerKey = "X-Caller-Key"
)

var (
	ErrMissingCaller    = errors.New("caller identity required")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// GenerateCallerKey creates the HMAC-based key that proves a caller owns an identity
// This is deterministic, so keys never need to be stored
func GenerateCallerKey(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks if the provided key is valid for the identity
func ValidateCallerKey(identity, key, salt string) error {
	expected := GenerateCallerKey(identity, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// Authenticate turns a raw identity/key pair into an engine identity
func Authenticate(identity, key, salt string) (election.Identity, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", ErrMissingCaller
	}
	if err := ValidateCallerKey(identity, key, salt); err != nil {
		return "", err
	}
	return election.Identity(identity), nil
}
