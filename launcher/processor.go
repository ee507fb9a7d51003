package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var endpointColor = color.New(color.FgGreen, color.Bold)

// LineProcessor echoes server output to the operator and captures the first endpoint it sees.
type LineProcessor struct {
	// Out receives every line verbatim, plus the confirmation message.
	Out io.Writer
	// OnCapture, if set, is called once with the captured endpoint, after the confirmation message is written.
	OnCapture func(endpoint string)

	capture Capture
}

// Capture returns the current capture state.
func (p *LineProcessor) Capture() Capture {
	return p.capture
}

// Line handles a single line of output. The line is written to Out as-is, so it should keep its line terminator.
func (p *LineProcessor) Line(line string) error {
	if _, err := io.WriteString(p.Out, line); err != nil {
		return fmt.Errorf("echoing line: %w", err)
	}
	next, captured := p.capture.Observe(line)
	p.capture = next
	if !captured {
		return nil
	}
	if err := p.announce(next.Endpoint); err != nil {
		return err
	}
	if p.OnCapture != nil {
		p.OnCapture(next.Endpoint)
	}
	return nil
}

func (p *LineProcessor) announce(endpoint string) error {
	_, err := fmt.Fprintf(p.Out, "\nCaptured WS endpoint: %s\nYou can now run the connector with this endpoint.\n",
		endpointColor.Sprint(endpoint))
	if err != nil {
		return fmt.Errorf("writing confirmation: %w", err)
	}
	return nil
}

// Process reads r line by line until EOF, handling each line.
// A final line without a trailing newline is still handled.
func (p *LineProcessor) Process(r io.Reader) (Capture, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if lerr := p.Line(line); lerr != nil {
				return p.capture, lerr
			}
		}
		if errors.Is(err, io.EOF) {
			return p.capture, nil
		}
		if err != nil {
			return p.capture, fmt.Errorf("reading output: %w", err)
		}
	}
}
