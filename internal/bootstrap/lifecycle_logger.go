package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LifecycleEvent describes a process-level event such as startup or
// shutdown. It is unrelated to the per-user audit trail.
type LifecycleEvent struct {
	Action  string
	Message string
	Meta    map[string]any
}

type LifecycleLogger interface {
	Log(ctx context.Context, event LifecycleEvent)
}

type StdoutLifecycleLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutLifecycleLogger(logger *zap.Logger) *StdoutLifecycleLogger {
	return &StdoutLifecycleLogger{logger: logger.Named("lifecycle"), now: time.Now}
}

func (l *StdoutLifecycleLogger) Log(ctx context.Context, event LifecycleEvent) {
	l.logger.Info("lifecycle event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", event.Action),
		zap.String("message", event.Message),
		zap.Any("meta", event.Meta),
	)
}
