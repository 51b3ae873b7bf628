// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/thautwarm/pmakefile/internal/adapters/cache"
	_ "github.com/thautwarm/pmakefile/internal/adapters/config"
	_ "github.com/thautwarm/pmakefile/internal/adapters/fs"
	_ "github.com/thautwarm/pmakefile/internal/adapters/logger"
	_ "github.com/thautwarm/pmakefile/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/thautwarm/pmakefile/internal/app"
	_ "github.com/thautwarm/pmakefile/internal/engine/resolver"
)
