// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jlc/internal/adapters/cas"
	_ "go.trai.ch/jlc/internal/adapters/config"
	_ "go.trai.ch/jlc/internal/adapters/fs"
	_ "go.trai.ch/jlc/internal/adapters/julia"
	_ "go.trai.ch/jlc/internal/adapters/logger"
	_ "go.trai.ch/jlc/internal/adapters/shell"
	_ "go.trai.ch/jlc/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/jlc/internal/app"
	_ "go.trai.ch/jlc/internal/engine/pipeline"
)
