// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers are selected by APP_ENV: human-readable text in development,
// JSON for log aggregators in production. An optional MongoDB handler can
// be fanned in so every log line is queryable next to the order documents.
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", id, "total", total)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/epicurean/epicurean/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}

	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Attach replaces the root handler with a fan-out over the current handler
// and the given extras (e.g. the Mongo handler). Called once at bootstrap.
func Attach(extras ...slog.Handler) {
	hs := append([]slog.Handler{L.Handler()}, extras...)
	L = slog.New(NewMultiHandler(hs...))
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger stored by the Logger
// middleware (pre-tagged with request_id), or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped *slog.Logger into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
