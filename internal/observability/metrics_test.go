package observability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/observability"
)

func TestMetricsCounters(t *testing.T) {
	metrics := observability.NewMetrics()

	metrics.RecordRequest("/issues/list", "GET", 200, 5*time.Millisecond)
	metrics.RecordRequest("/issues/list", "GET", 200, 7*time.Millisecond)
	metrics.RecordRequest("/issues/list", "GET", 403, time.Millisecond)
	metrics.RecordError("/issues/list", "GET", "FORBIDDEN")

	require.Equal(t, int64(2), metrics.RequestCount("/issues/list", "GET", 200))
	require.Equal(t, int64(1), metrics.RequestCount("/issues/list", "GET", 403))
	require.Equal(t, int64(0), metrics.RequestCount("/issues/list", "POST", 200))
	require.Equal(t, int64(1), metrics.ErrorCount("/issues/list", "GET", "FORBIDDEN"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *observability.Metrics

	metrics.RecordRequest("/", "GET", 200, 0)
	metrics.RecordError("/", "GET", "INTERNAL_ERROR")
	require.Equal(t, int64(0), metrics.RequestCount("/", "GET", 200))
	require.Equal(t, int64(0), metrics.ErrorCount("/", "GET", "INTERNAL_ERROR"))
}
