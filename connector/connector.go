package connector

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint       = "ws://localhost:9222/playwright"
	DefaultTargetURL      = "https://x.com"
	DefaultScreenshotPath = "remote_screenshot.png"

	loggerName = "connector"
)

// Driver opens a connection to a remote browser server.
type Driver interface {
	Connect(endpoint string) (Browser, error)
}

// Browser is a connected remote browser. Closing it drops the connection but leaves the server running.
type Browser interface {
	NewPage() (Page, error)
	Close() error
}

type Page interface {
	Goto(url string) error
	Title() (string, error)
	Screenshot(path string) error
}

// EndpointFromArgs returns the first positional arg verbatim, or DefaultEndpoint if there is none.
func EndpointFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultEndpoint
}

// Report is the result of a successful session.
type Report struct {
	SessionID      string
	Title          string
	ScreenshotPath string
}

// Session drives one scripted visit against a remote browser: connect, open a page, navigate,
// read the title, take a screenshot, disconnect.
type Session struct {
	ID             string
	Endpoint       string
	TargetURL      string
	ScreenshotPath string

	log *zap.SugaredLogger
	out io.Writer
}

type Option func(s *Session)

func WithTargetURL(url string) Option {
	return func(s *Session) {
		s.TargetURL = url
	}
}

func WithScreenshotPath(path string) Option {
	return func(s *Session) {
		s.ScreenshotPath = path
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) {
		s.log = l.Named(loggerName)
	}
}

func NewSession(endpoint string, opts ...Option) *Session {
	s := &Session{
		ID:             uuid.NewString(),
		Endpoint:       endpoint,
		TargetURL:      DefaultTargetURL,
		ScreenshotPath: DefaultScreenshotPath,
		log:            zap.NewNop().Sugar(),
		out:            os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run performs the session steps in order. The first failing step aborts the rest and is returned as a *StepError.
// Once connected, the browser is always closed; a close failure is only reported if everything else succeeded.
func (s *Session) Run(driver Driver) (report *Report, err error) {
	log := s.log.With("SessionID", s.ID)

	fmt.Fprintf(s.out, "Connecting to remote browser at: %s\n", s.Endpoint)
	browser, err := driver.Connect(s.Endpoint)
	if err != nil {
		return nil, stepErr(StepConnect, err)
	}
	log.Debugw("connected", "Endpoint", s.Endpoint)
	defer func() {
		closeErr := browser.Close()
		if closeErr == nil {
			log.Debug("closed browser connection")
			return
		}
		log.Debugf("error closing browser connection: %s", closeErr)
		if err == nil {
			err = stepErr(StepClose, closeErr)
		}
	}()

	page, err := browser.NewPage()
	if err != nil {
		return nil, stepErr(StepNewPage, err)
	}

	fmt.Fprintf(s.out, "Navigating to %s...\n", s.TargetURL)
	err = page.Goto(s.TargetURL)
	if err != nil {
		return nil, stepErr(StepNavigate, err)
	}

	title, err := page.Title()
	if err != nil {
		return nil, stepErr(StepTitle, err)
	}
	fmt.Fprintf(s.out, "Page title: %s\n", title)

	err = page.Screenshot(s.ScreenshotPath)
	if err != nil {
		return nil, stepErr(StepScreenshot, err)
	}
	fmt.Fprintf(s.out, "Screenshot saved to %s\n", s.ScreenshotPath)
	log.Infow("session done", "Title", title, "Screenshot", s.ScreenshotPath)

	return &Report{SessionID: s.ID, Title: title, ScreenshotPath: s.ScreenshotPath}, nil
}
