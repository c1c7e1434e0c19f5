// Package providers contains dependency injection providers for BookTrack.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack/internal/config"
	"github.com/booktrackapp/booktrack/internal/logger"
)

// ProvideConfig provides the application configuration, applying the CLI
// overrides registered as a value in the container.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	overrides := do.MustInvoke[config.Overrides](i)
	return config.LoadConfig(overrides)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	// Logs go to stderr so command output stays clean for piping.
	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting BookTrack",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.Path,
	)

	return log, nil
}
