package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimer_StartsAtCreation(t *testing.T) {
	timer := NewTimer()

	require.NotNil(t, timer)
	assert.False(t, timer.start.IsZero())
	assert.Less(t, time.Since(timer.start), time.Second)
}

func TestTimer_DurationTracksElapsedCallTime(t *testing.T) {
	timer := NewTimer()
	const elapsed = 100 * time.Millisecond
	time.Sleep(elapsed)

	duration := timer.Duration()

	assert.GreaterOrEqual(t, duration, elapsed)
	assert.Less(t, duration, 2*elapsed)
}

func TestTimer_ObserveDurationRecordsAgainstCallDurationHistogram(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_ipcfabric_call_duration_seconds",
		Help:    "IPC call duration under test",
		Buckets: prometheus.DefBuckets,
	})

	timer := NewTimer()
	time.Sleep(50 * time.Millisecond)
	timer.ObserveDuration(histogram)

	assert.NotZero(t, timer.Duration())
}

func TestTimer_ObserveDurationVecLabelsByMethod(t *testing.T) {
	histogramVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "test_ipcfabric_call_duration_by_method_seconds",
			Help:    "IPC call duration under test, by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	timer := NewTimer()
	time.Sleep(50 * time.Millisecond)
	timer.ObserveDurationVec(histogramVec, "Dispatch")

	assert.NotZero(t, timer.Duration())
}

func TestTimer_DurationIsMonotonicAcrossRepeatedCalls(t *testing.T) {
	timer := NewTimer()

	var last time.Duration
	for i := 0; i < 5; i++ {
		time.Sleep(10 * time.Millisecond)
		current := timer.Duration()
		assert.Greater(t, current, last, "iteration %d", i)
		last = current
	}
}

func TestTimer_IndependentTimersDoNotShareState(t *testing.T) {
	first := NewTimer()
	time.Sleep(50 * time.Millisecond)
	second := NewTimer()
	time.Sleep(50 * time.Millisecond)

	assert.Greater(t, first.Duration(), second.Duration())
}

func TestTimer_DurationNonNegativeBeforeAnySleep(t *testing.T) {
	timer := NewTimer()

	duration := timer.Duration()

	assert.GreaterOrEqual(t, duration, time.Duration(0))
	assert.Less(t, duration, time.Millisecond)
}
