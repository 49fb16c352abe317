// Package logger provides a structured, levelled logger built on log/slog.
//
// Besides the console handler, two asynchronous best-effort sinks can be
// attached: an append-only log file and a MongoDB collection. Both enqueue
// records on a buffered channel and drop them when the queue is full —
// logging never blocks application code and a sink failure never propagates
// to the caller.
//
// WithCtx returns a logger pre-tagged with the current request ID, so every
// log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
package logger

import (
	"context"
	"log/slog"
	"os"

	"apachemart/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}

	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// closer is implemented by sinks that buffer writes.
type closer interface{ Close() }

var sinks []closer

// Setup attaches the configured asynchronous sinks (file, and MongoDB when
// LOG_MONGO_URI is set) behind the console handler. Call once at startup,
// after config.Load; pair with Shutdown.
func Setup() {
	handlers := []slog.Handler{L.Handler()}

	if path := config.LogFile(); path != "" {
		fh := NewFileHandler(path)
		handlers = append(handlers, fh)
		sinks = append(sinks, fh)
	}

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := NewMongoHandler(uri, config.LogMongoDB(), "logs")
		if err != nil {
			L.Warn("mongo log sink disabled", "error", err)
		} else {
			handlers = append(handlers, mh)
			sinks = append(sinks, mh)
		}
	}

	if len(handlers) > 1 {
		L = slog.New(NewMultiHandler(handlers...))
		slog.SetDefault(L)
	}
}

// Shutdown flushes and closes the attached sinks.
func Shutdown() {
	for _, s := range sinks {
		s.Close()
	}
	sinks = nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger injected by the Logger
// middleware, or the base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
