package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
)

func TestWrapWithSpanRecordsSpans(t *testing.T) {
	ctx, info := tracing.AttachTracingInfo(context.Background(), "req-1")
	assert.Equal(t, "req-1", tracing.TraceId(ctx))

	value, err := tracing.WrapWithSpan(ctx, "rewardSnapshot", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = tracing.WrapWithSpan(ctx, "bridgeQuote", func() (string, error) { return "", errors.New("rpc down") })
	assert.EqualError(t, err, "rpc down")

	require.Len(t, info.SpanDetails, 2)
	assert.Equal(t, "rewardSnapshot", info.SpanDetails[0].Name)
	assert.Equal(t, "bridgeQuote", info.SpanDetails[1].Name)
}

func TestWrapWithSpanWithoutTracingInfo(t *testing.T) {
	value, err := tracing.WrapWithSpan(context.Background(), "tick", func() (bool, error) { return true, nil })
	require.NoError(t, err)
	assert.True(t, value)
	assert.Empty(t, tracing.TraceId(context.Background()))
}
