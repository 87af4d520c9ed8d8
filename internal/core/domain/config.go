package domain

import "time"

const (
	// DefaultAPIURL is the backend base URL used when none is configured.
	DefaultAPIURL = "http://localhost:5000/api"

	// DefaultLiveURL is the live update endpoint used when none is configured.
	DefaultLiveURL = "ws://localhost:5000/ws"

	// DefaultRequestTimeout bounds every REST call.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultCacheTTL is how long a fetched collection is served without a network call.
	DefaultCacheTTL = 15 * time.Minute

	// DefaultRefreshInterval is the period of the background refresh.
	DefaultRefreshInterval = 2 * time.Minute
)

// FingerprintMode selects how collections are compared between refreshes.
type FingerprintMode string

const (
	// FingerprintLength compares serialized length and item count. It misses
	// edits that keep both unchanged.
	FingerprintLength FingerprintMode = "length"
	// FingerprintContent compares a hash of the serialized collection.
	FingerprintContent FingerprintMode = "content"
)

// Config is the resolved runtime configuration.
type Config struct {
	APIURL          string
	LiveURL         string
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	Fingerprint     FingerprintMode
	StoragePath     string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		APIURL:          DefaultAPIURL,
		LiveURL:         DefaultLiveURL,
		RequestTimeout:  DefaultRequestTimeout,
		CacheTTL:        DefaultCacheTTL,
		RefreshInterval: DefaultRefreshInterval,
		Fingerprint:     FingerprintLength,
		StoragePath:     DefaultStoragePath(),
	}
}
