package config

// File represents the structure of the courseware.yaml configuration file.
// Durations are Go duration strings such as "30s" or "15m".
type File struct {
	Version string     `yaml:"version"`
	API     APIDTO     `yaml:"api"`
	Live    LiveDTO    `yaml:"live"`
	Cache   CacheDTO   `yaml:"cache"`
	Storage StorageDTO `yaml:"storage"`
}

// APIDTO configures the REST client.
type APIDTO struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// LiveDTO configures the live update feed.
type LiveDTO struct {
	URL string `yaml:"url"`
}

// CacheDTO configures the collection caches.
type CacheDTO struct {
	TTL             string `yaml:"ttl"`
	RefreshInterval string `yaml:"refresh_interval"`
	Fingerprint     string `yaml:"fingerprint"`
}

// StorageDTO configures the key-value store.
type StorageDTO struct {
	Path string `yaml:"path"`
}
