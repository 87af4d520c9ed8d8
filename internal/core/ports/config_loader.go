package ports

import "go.trai.ch/courseware/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file starting at cwd and walking up, applies
	// environment overrides and returns the resolved config. A missing file is not
	// an error: defaults are returned.
	Load(cwd string) (domain.Config, error)

	// LoadFile reads the configuration from an explicit path.
	LoadFile(path string) (domain.Config, error)
}
