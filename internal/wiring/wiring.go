// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/courseware/internal/adapters/api"
	_ "go.trai.ch/courseware/internal/adapters/config"
	_ "go.trai.ch/courseware/internal/adapters/live"
	_ "go.trai.ch/courseware/internal/adapters/logger"
	_ "go.trai.ch/courseware/internal/adapters/storage"
	_ "go.trai.ch/courseware/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/courseware/internal/app"
)
