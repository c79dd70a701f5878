package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFrom(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core).Sugar())

	LoggerFrom(ctx).Infof("created proposal %d", 7)
	LoggerFrom(ctx).Debugf("skipped %s", "instruction")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "created proposal 7", entries[0].Message)
	assert.Equal(t, "skipped instruction", entries[1].Message)
}

func TestLoggerFrom_Fallback(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, LoggerFrom(context.Background()))
}
