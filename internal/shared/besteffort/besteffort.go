// Package besteffort runs side effects whose failure must never reach the
// caller: audit appends, file removal and cache invalidation.
package besteffort

import (
	"context"

	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

const channel = "besteffort"

// Do runs fn and logs a failure on the best-effort channel. It reports
// whether fn succeeded so tests can observe the outcome.
func Do(ctx context.Context, logger *zap.Logger, op string, fn func() error) bool {
	defer func() {
		if r := recover(); r != nil {
			contextutil.GetLogger(ctx, logger).Named(channel).Error("best-effort operation panicked",
				zap.String("op", op),
				zap.Any("panic", r),
			)
		}
	}()

	if err := fn(); err != nil {
		meta := contextutil.ExtractMetadata(ctx)
		contextutil.GetLogger(ctx, logger).Named(channel).Warn("best-effort operation failed",
			zap.String("op", op),
			zap.String("request_id", meta.RequestID),
			zap.String("user_id", meta.UserID),
			zap.Error(err),
		)
		return false
	}
	return true
}
