package mysqlbatch

import (
	"context"
	"log/slog"
)

// logger is the narrow subset of *slog.Logger this package calls through,
// mirroring internal/driver/mysql/log's logger interface so Connection can
// accept any *slog.Logger (or a compatible test double) without importing
// slog's concrete type into call sites.
type logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

var _ logger = (*slog.Logger)(nil)
