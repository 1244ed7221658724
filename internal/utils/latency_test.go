package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatencyTrackerPercentile(t *testing.T) {
	tracker := NewLatencyTracker(10)
	durations := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond, 50 * time.Millisecond}
	for _, d := range durations {
		tracker.Observe(d)
	}

	assert.Equal(t, len(durations), tracker.Count())
	assert.GreaterOrEqual(t, tracker.Percentile(95), 40*time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, tracker.Percentile(0))
	assert.Equal(t, 50*time.Millisecond, tracker.Percentile(100))
}

func TestLatencyTrackerKeepsMostRecentSamples(t *testing.T) {
	tracker := NewLatencyTracker(3)
	var seen uint64
	for i := 1; i <= 10; i++ {
		seen = tracker.Observe(time.Duration(i) * time.Millisecond)
	}

	assert.Equal(t, uint64(10), seen)
	assert.Equal(t, uint64(10), tracker.Total())
	assert.Equal(t, 3, tracker.Count())
	assert.Equal(t, 8*time.Millisecond, tracker.Percentile(0))
	assert.Equal(t, 10*time.Millisecond, tracker.Percentile(100))
}

func TestLatencyTrackerEmpty(t *testing.T) {
	tracker := NewLatencyTracker(0)
	assert.Zero(t, tracker.Percentile(95))
	assert.Zero(t, tracker.Count())
}
