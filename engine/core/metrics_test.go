package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRollingAverage(t *testing.T) {
	m := NewMetrics()
	m.Update(0.010)
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)

	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.010)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)

	// older samples leave the window
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.020)
	}
	assert.InDelta(t, 20.0, m.FrameTime(), 1e-6)
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	// 101 frames of 10ms cross the one second mark exactly once
	for i := 0; i < 101; i++ {
		m.Update(0.010)
	}
	fps, ms := m.Frame()
	assert.InDelta(t, 101.0, fps, 1.0)
	assert.InDelta(t, 10.0, ms, 1e-6)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLogLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLogLevel("nonsense"))
}
