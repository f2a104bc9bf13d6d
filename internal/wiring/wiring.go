// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/relink/internal/adapters/cas"
	_ "go.trai.ch/relink/internal/adapters/config"
	_ "go.trai.ch/relink/internal/adapters/fs"
	_ "go.trai.ch/relink/internal/adapters/imagefs"
	_ "go.trai.ch/relink/internal/adapters/logger"
	_ "go.trai.ch/relink/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/relink/internal/app"
	_ "go.trai.ch/relink/internal/engine/pass"
)
