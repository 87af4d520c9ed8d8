package domain

const (
	// TokenKey is the storage key holding the bearer token. Every reader and writer uses it.
	TokenKey = "smartcliff_token"

	// LegacyTokenKey is a key older builds wrote the token under. It is only read once
	// and migrated to TokenKey.
	LegacyTokenKey = "authToken"
)
