package graph

import (
	"context"
	"log/slog"
	"time"
)

// Observer is notified around every stage invocation. Calls may arrive from
// several goroutines at once.
type Observer interface {
	StageStarted(ctx context.Context, stage string)
	StageFinished(ctx context.Context, stage string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) StageStarted(context.Context, string) {}
func (nopObserver) StageFinished(context.Context, string, time.Duration, error) {}

// LogObserver writes one slog record per stage transition.
type LogObserver struct {
	Logger *slog.Logger
	Attrs  []any
}

func NewLogObserver(logger *slog.Logger, attrs ...any) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{Logger: logger, Attrs: attrs}
}

func (o *LogObserver) StageStarted(ctx context.Context, stage string) {
	o.Logger.DebugContext(ctx, "stage started", append([]any{"stage", stage}, o.Attrs...)...)
}

func (o *LogObserver) StageFinished(ctx context.Context, stage string, elapsed time.Duration, err error) {
	args := append([]any{"stage", stage, "duration", elapsed}, o.Attrs...)
	if err != nil {
		o.Logger.ErrorContext(ctx, "stage failed", append(args, "error", err)...)
		return
	}
	o.Logger.InfoContext(ctx, "stage finished", args...)
}
