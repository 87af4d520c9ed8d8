package ports

import "context"

// KeyValueStore is a small persistent string store.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type KeyValueStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key and persists the store.
	Set(key, value string) error

	// Delete removes key and persists the store. Deleting a missing key is not an error.
	Delete(key string) error

	// Watch reloads the store whenever the backing file changes outside this process.
	// It blocks until ctx is done.
	Watch(ctx context.Context) error
}

// TokenStore holds the bearer token used for backend calls.
type TokenStore interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)

	// SetToken replaces the stored token.
	SetToken(token string) error

	// ClearToken removes the stored token.
	ClearToken() error
}
