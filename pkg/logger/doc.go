// Package logger builds slog loggers for the SSR host: JSON or text output,
// request-scoped attributes pulled from context, and optional Sentry delivery.
//
// # Context extractors
//
// A ContextExtractor turns a value stored on the request context into a log
// attribute. Extractors run on every record, so values such as the request id
// set by middleware show up on every line logged while handling the request:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(c, "page resolved", slog.Int("status", 200))
//	// {"level":"INFO","msg":"page resolved","status":200,"request_id":"..."}
//
// WithExtractors adds the same behavior to any slog.Handler.
//
// # Configuration
//
// Config carries env tags (LOG_LEVEL, LOG_FORMAT) and is meant to be embedded
// in an application config loaded by pkg/config:
//
//	log := logger.NewWithConfig(logger.Config{Level: "debug", Format: "text"}, os.Stderr)
//
// # Sentry
//
// NewWithSentryConfig writes to stdout and, when a DSN is configured, to
// Sentry as well. Errors become Sentry events; warnings are kept as logs.
// Without a DSN, or when Sentry fails to initialize, only stdout is used.
// Register FlushSentry as a shutdown hook to drain pending events:
//
//	app.Run(addr, reactssr.ShutdownHook(logger.FlushSentry(2*time.Second)))
package logger
