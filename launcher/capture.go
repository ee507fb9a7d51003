package launcher

import "regexp"

var endpointRE = regexp.MustCompile(`ws://\S+`)

// Capture is the endpoint captured from the server output, if any.
// The zero value means nothing has been captured yet.
type Capture struct {
	Endpoint string
	Found    bool
}

// Observe returns the capture state after seeing line, and whether line triggered the capture.
// Once an endpoint is found, later lines never change it.
func (c Capture) Observe(line string) (Capture, bool) {
	if c.Found {
		return c, false
	}
	m := endpointRE.FindString(line)
	if m == "" {
		return c, false
	}
	return Capture{Endpoint: m, Found: true}, true
}

// State is the lifecycle state of a supervised server process.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateEndpointCaptured
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateEndpointCaptured:
		return "endpoint_captured"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
