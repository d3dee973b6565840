package contextutil_test

import (
	"context"
	"testing"

	"go-hrms/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithClientIP(ctx, "10.0.0.7")

	meta := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "rid-1", meta.RequestID)
	assert.Equal(t, "user-1", meta.UserID)
	assert.Equal(t, "10.0.0.7", meta.ClientIP)
}

func TestGetLogger(t *testing.T) {
	fallback := zap.NewExample()
	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	scoped := zap.NewExample().Named("req")
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
}
