// Package observability wires logging and metrics into the fx graph.
package observability

import (
	"github.com/sipworks/brewadmin/internal/config"
	"github.com/sipworks/brewadmin/internal/observability/logger"
	"github.com/sipworks/brewadmin/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       true,
		IncludeStackOnError: !cfg.IsProduction(),
	}
}
