package launcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confirmation = "You can now run the connector with this endpoint.\n"

func TestProcessorEndToEnd(t *testing.T) {
	out := &bytes.Buffer{}
	var captured []string
	p := &LineProcessor{
		Out:       out,
		OnCapture: func(endpoint string) { captured = append(captured, endpoint) },
	}

	capture, err := p.Process(strings.NewReader("Listening...\nWS endpoint: ws://127.0.0.1:9222/abc123\n"))
	require.NoError(t, err)

	assert.Equal(t, Capture{Endpoint: "ws://127.0.0.1:9222/abc123", Found: true}, capture)
	assert.Equal(t, []string{"ws://127.0.0.1:9222/abc123"}, captured)
	assert.Equal(t,
		"Listening...\n"+
			"WS endpoint: ws://127.0.0.1:9222/abc123\n"+
			"\nCaptured WS endpoint: ws://127.0.0.1:9222/abc123\n"+
			confirmation,
		out.String(),
	)
}

func TestProcessorCapturesOnce(t *testing.T) {
	out := &bytes.Buffer{}
	calls := 0
	p := &LineProcessor{Out: out, OnCapture: func(string) { calls++ }}

	input := "boot\nws://first:1/a\nws://second:2/b\nws://first:1/a\nbye\n"
	capture, err := p.Process(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "ws://first:1/a", capture.Endpoint)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, strings.Count(out.String(), confirmation))

	// every line is echoed once and in order, with the confirmation right after the capturing line
	expected := "boot\nws://first:1/a\n\nCaptured WS endpoint: ws://first:1/a\n" + confirmation +
		"ws://second:2/b\nws://first:1/a\nbye\n"
	assert.Equal(t, expected, out.String())
}

func TestProcessorNoEndpoint(t *testing.T) {
	out := &bytes.Buffer{}
	p := &LineProcessor{Out: out, OnCapture: func(string) { t.Fatal("unexpected capture") }}

	input := "one\ntwo\r\nthree"
	capture, err := p.Process(strings.NewReader(input))
	require.NoError(t, err)

	assert.False(t, capture.Found)
	assert.Empty(t, capture.Endpoint)
	assert.Equal(t, input, out.String())
}

func TestProcessorUnterminatedLastLine(t *testing.T) {
	out := &bytes.Buffer{}
	p := &LineProcessor{Out: out}

	capture, err := p.Process(strings.NewReader("ready ws://host:1/path"))
	require.NoError(t, err)

	assert.Equal(t, "ws://host:1/path", capture.Endpoint)
	assert.True(t, strings.HasPrefix(out.String(), "ready ws://host:1/path\nCaptured WS endpoint:"))
}

func TestProcessorLongLine(t *testing.T) {
	out := &bytes.Buffer{}
	p := &LineProcessor{Out: out}

	long := strings.Repeat("x", 1<<20) + " ws://host:1/long\n"
	capture, err := p.Process(strings.NewReader(long))
	require.NoError(t, err)
	assert.Equal(t, "ws://host:1/long", capture.Endpoint)
	assert.True(t, strings.HasPrefix(out.String(), long))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("console gone") }

func TestProcessorEchoError(t *testing.T) {
	p := &LineProcessor{Out: failingWriter{}}
	_, err := p.Process(strings.NewReader("hello\n"))
	require.ErrorContains(t, err, "console gone")
}
