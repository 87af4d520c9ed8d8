package storage

import (
	"strings"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TokenStore = (*Tokens)(nil)

// Tokens keeps the bearer token under domain.TokenKey.
// A token left under domain.LegacyTokenKey is moved on first read.
type Tokens struct {
	kv ports.KeyValueStore
}

// NewTokens creates a TokenStore over kv.
func NewTokens(kv ports.KeyValueStore) *Tokens {
	return &Tokens{kv: kv}
}

// Token returns the stored token.
func (t *Tokens) Token() (string, bool) {
	if token, ok := t.kv.Get(domain.TokenKey); ok && token != "" {
		return token, true
	}

	legacy, ok := t.kv.Get(domain.LegacyTokenKey)
	if !ok || legacy == "" {
		return "", false
	}
	if err := t.kv.Set(domain.TokenKey, legacy); err == nil {
		_ = t.kv.Delete(domain.LegacyTokenKey)
	}
	return legacy, true
}

// SetToken stores token, trimming surrounding whitespace.
func (t *Tokens) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrTokenMissing
	}
	if err := t.kv.Set(domain.TokenKey, token); err != nil {
		return err
	}
	return t.kv.Delete(domain.LegacyTokenKey)
}

// ClearToken removes the token under both keys.
func (t *Tokens) ClearToken() error {
	if err := t.kv.Delete(domain.TokenKey); err != nil {
		return zerr.Wrap(err, "failed to clear token")
	}
	return t.kv.Delete(domain.LegacyTokenKey)
}
