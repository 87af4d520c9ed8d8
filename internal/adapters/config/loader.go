// Package config provides the configuration loader for courseware.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvAPIURL  = "COURSEWARE_API_URL"
	EnvLiveURL = "COURSEWARE_WS_URL"
	EnvHome    = "COURSEWARE_HOME"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, fs: NewOSFS(), getenv: os.Getenv}
}

// NewLoaderWithFS creates a Loader over a custom filesystem and environment lookup.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem, getenv func(string) string) *Loader {
	return &Loader{Logger: logger, fs: fsys, getenv: getenv}
}

// Load looks for courseware.yaml in cwd and its parents. Without one, defaults apply
// and relative paths resolve against cwd.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	path, ok := l.findConfiguration(cwd)
	if !ok {
		return l.finish(domain.DefaultConfig(), cwd)
	}
	return l.LoadFile(path)
}

// LoadFile reads the configuration at path. Relative paths inside it resolve
// against the file's directory.
func (l *Loader) LoadFile(path string) (domain.Config, error) {
	var file File
	if err := l.readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}

	cfg, err := l.apply(domain.DefaultConfig(), &file)
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return l.finish(cfg, filepath.Dir(path))
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(cfg domain.Config, file *File) (domain.Config, error) {
	if file.API.BaseURL != "" {
		cfg.APIURL = file.API.BaseURL
	}
	if file.Live.URL != "" {
		cfg.LiveURL = file.Live.URL
	}
	if file.Storage.Path != "" {
		cfg.StoragePath = file.Storage.Path
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("api.timeout", file.API.Timeout, cfg.RequestTimeout, false); err != nil {
		return cfg, err
	}
	if cfg.CacheTTL, err = parseDuration("cache.ttl", file.Cache.TTL, cfg.CacheTTL, false); err != nil {
		return cfg, err
	}
	if cfg.RefreshInterval, err = parseDuration("cache.refresh_interval", file.Cache.RefreshInterval, cfg.RefreshInterval, true); err != nil {
		return cfg, err
	}

	switch mode := domain.FingerprintMode(file.Cache.Fingerprint); mode {
	case "":
	case domain.FingerprintLength, domain.FingerprintContent:
		cfg.Fingerprint = mode
	default:
		return cfg, zerr.With(domain.ErrInvalidConfig, "cache.fingerprint", file.Cache.Fingerprint)
	}

	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown %s version %q, reading it as version 1", domain.ConfigFileName, file.Version))
	}

	return cfg, nil
}

// finish applies environment overrides, resolves relative paths against base and validates.
func (l *Loader) finish(cfg domain.Config, base string) (domain.Config, error) {
	if v := l.getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := l.getenv(EnvLiveURL); v != "" {
		cfg.LiveURL = v
	}
	if v := l.getenv(EnvHome); v != "" {
		cfg.StoragePath = filepath.Join(v, domain.StorageFileName)
	}

	if !filepath.IsAbs(cfg.StoragePath) {
		cfg.StoragePath = filepath.Join(base, cfg.StoragePath)
	}

	if err := validateURL("api.base_url", cfg.APIURL, "http", "https"); err != nil {
		return domain.Config{}, err
	}
	if err := validateURL("live.url", cfg.LiveURL, "ws", "wss"); err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

func (l *Loader) readAndUnmarshalYAML(path string, target *File) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

// parseDuration returns fallback for an empty value. Zero is accepted only when allowZero is set.
func parseDuration(field, value string, fallback time.Duration, allowZero bool) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", field)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, zerr.With(zerr.With(domain.ErrInvalidConfig, "field", field), "value", value)
	}
	return d, nil
}

func validateURL(field, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", field)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", field), "value", raw)
}
