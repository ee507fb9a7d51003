package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureObserve(t *testing.T) {
	cases := []struct {
		name     string
		lines    []string
		expected Capture
		triggers []bool
	}{
		{
			name:     "no endpoint",
			lines:    []string{"Listening...", "still nothing here", "http://localhost:9222"},
			expected: Capture{},
			triggers: []bool{false, false, false},
		},
		{
			name:     "first match wins",
			lines:    []string{"a ws://first:1/x b", "ws://second:2/y"},
			expected: Capture{Endpoint: "ws://first:1/x", Found: true},
			triggers: []bool{true, false},
		},
		{
			name:     "first match within a line",
			lines:    []string{"endpoints ws://one/1 ws://two/2\n"},
			expected: Capture{Endpoint: "ws://one/1", Found: true},
			triggers: []bool{true},
		},
		{
			name:     "token stops at whitespace",
			lines:    []string{"WS endpoint:\tws://127.0.0.1:9222/abc123\tready"},
			expected: Capture{Endpoint: "ws://127.0.0.1:9222/abc123", Found: true},
			triggers: []bool{true},
		},
		{
			name:     "bare scheme does not match",
			lines:    []string{"ws:// nothing", "ws://"},
			expected: Capture{},
			triggers: []bool{false, false},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var capture Capture
			for i, line := range c.lines {
				var triggered bool
				capture, triggered = capture.Observe(line)
				assert.Equal(t, c.triggers[i], triggered, "line %d", i)
			}
			assert.Equal(t, c.expected, capture)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_started", StateNotStarted.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "endpoint_captured", StateEndpointCaptured.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
