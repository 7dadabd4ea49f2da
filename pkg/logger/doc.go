// Package logger builds the process-wide slog.Logger: JSON or text
// encoding, level from environment, and context extractors that annotate
// every record with request-scoped values such as the resolved tenant id.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg,
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
package logger
