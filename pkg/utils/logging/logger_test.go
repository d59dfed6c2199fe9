package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/agente-ai/agente/pkg/utils/logging"
)

func TestNewWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("info", &buf)

	logger.Info("hello", "key", "value")

	out := buf.String()
	gt.True(t, strings.Contains(out, "hello"))
	gt.True(t, strings.Contains(out, "value"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("warn", &buf)

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	gt.False(t, strings.Contains(out, "should not appear"))
	gt.True(t, strings.Contains(out, "should appear"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("debug", &buf)

	ctx := logging.With(context.Background(), logger)
	retrieved := logging.From(ctx)
	gt.Equal(t, retrieved, logger)
}

func TestFromFallsBackToDefault(t *testing.T) {
	retrieved := logging.From(context.Background())
	gt.Equal(t, retrieved, logging.Default())
}
