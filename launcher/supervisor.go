package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/guseggert/pwremote/internal/files"
	"go.uber.org/zap"
)

const (
	DefaultCommand = "playwright"
	DefaultBrowser = "chromium"
	DefaultConfig  = "config.json"

	loggerName = "launcher"
)

// Result describes a finished server run.
type Result struct {
	RunID    string
	Endpoint string
	ExitCode int
	TimeMS   int64
	// Interrupted is true if the run was stopped by cancelling its context rather than by the server exiting on its own.
	Interrupted bool
}

// Supervisor starts a browser server process, echoes its output, and captures the endpoint it announces.
// A Supervisor runs its process at most once.
type Supervisor struct {
	log   *zap.SugaredLogger
	out   io.Writer
	runID string

	command    string
	args       []string
	browser    string
	configPath string
	dir        string
	env        []string
	onCapture  func(endpoint string)

	mut     sync.Mutex
	state   State
	capture Capture
}

type Option func(s *Supervisor)

// WithCommand sets the server executable. If args are given they replace the launch-server arguments entirely.
func WithCommand(name string, args ...string) Option {
	return func(s *Supervisor) {
		s.command = name
		if len(args) > 0 {
			s.args = args
		}
	}
}

func WithBrowser(browser string) Option {
	return func(s *Supervisor) {
		s.browser = browser
	}
}

// WithConfig sets the server config file. It is passed to the server as-is.
func WithConfig(path string) Option {
	return func(s *Supervisor) {
		s.configPath = path
	}
}

func WithDir(dir string) Option {
	return func(s *Supervisor) {
		s.dir = dir
	}
}

func WithEnv(env ...string) Option {
	return func(s *Supervisor) {
		s.env = append(s.env, env...)
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Supervisor) {
		s.out = w
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Supervisor) {
		s.log = l.Named(loggerName)
	}
}

// WithOnCapture registers a hook that is called once when the endpoint is captured.
func WithOnCapture(f func(endpoint string)) Option {
	return func(s *Supervisor) {
		s.onCapture = f
	}
}

func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		log:        zap.NewNop().Sugar(),
		out:        os.Stdout,
		runID:      uuid.NewString(),
		command:    DefaultCommand,
		browser:    DefaultBrowser,
		configPath: DefaultConfig,
	}
	for _, o := range opts {
		o(s)
	}
	s.out = newSyncWriter(s.out)
	return s
}

func (s *Supervisor) RunID() string {
	return s.runID
}

func (s *Supervisor) State() State {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.state
}

// Capture returns the endpoint captured so far.
func (s *Supervisor) Capture() Capture {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.capture
}

func (s *Supervisor) setState(state State) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.log.Debugw("state transition", "From", s.state, "To", state)
	s.state = state
}

func (s *Supervisor) serverArgs() []string {
	if s.args != nil {
		return s.args
	}
	return []string{"launch-server", "--browser", s.browser, "--config", s.configPath}
}

// resolveCommand finds the server executable. Bare names missing from PATH are looked up
// in node_modules/.bin of the working dir and its parents, where npm installs local CLIs.
func (s *Supervisor) resolveCommand() string {
	if strings.ContainsRune(s.command, filepath.Separator) {
		return s.command
	}
	if path, err := exec.LookPath(s.command); err == nil {
		return path
	}
	dir := s.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return s.command
		}
		dir = wd
	}
	path, err := files.FindUp(filepath.Join("node_modules", ".bin", s.command), dir)
	if err != nil {
		s.log.Debugf("looking for local %s: %s", s.command, err)
	}
	if path == "" {
		return s.command
	}
	return path
}

// Run starts the server and blocks until it exits.
// Cancelling ctx asks the server to terminate gracefully; Run then waits, without a timeout, for it to exit,
// and returns a result with Interrupted set and no error.
func (s *Supervisor) Run(ctx context.Context) (*Result, error) {
	s.mut.Lock()
	if s.state != StateNotStarted {
		s.mut.Unlock()
		return nil, errors.New("server already started")
	}
	s.state = StateRunning
	s.mut.Unlock()

	command := s.resolveCommand()
	args := s.serverArgs()

	cmd := exec.Command(command, args...)
	cmd.Dir = s.dir
	if len(s.env) > 0 {
		cmd.Env = append(os.Environ(), s.env...)
	}
	output, err := cmd.StdoutPipe()
	if err != nil {
		s.setState(StateStopped)
		return nil, fmt.Errorf("creating output pipe: %w", err)
	}
	// same *os.File for both, so the server writes its combined output to one pipe
	cmd.Stderr = cmd.Stdout

	fmt.Fprintln(s.out, "Starting Playwright server via CLI...")
	s.log.Infow("starting server", "RunID", s.runID, "Command", command, "Args", args)

	start := time.Now()
	err = cmd.Start()
	if err != nil {
		s.setState(StateStopped)
		return nil, fmt.Errorf("starting %s: %w", command, err)
	}
	s.log.Debugw("server started", "PID", cmd.Process.Pid)

	// ask the server to terminate if the context is canceled
	var interruptMut sync.Mutex
	interrupted := false
	procExitedChan := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			interruptMut.Lock()
			interrupted = true
			interruptMut.Unlock()
			fmt.Fprintln(s.out, "\nStopping server...")
			s.log.Infow("terminating server", "PID", cmd.Process.Pid, "Reason", ctx.Err())
			if err := terminate(cmd.Process); err != nil {
				s.log.Debugf("error terminating server: %s", err)
			}
		case <-procExitedChan:
		}
	}()

	proc := &LineProcessor{
		Out: s.out,
		OnCapture: func(endpoint string) {
			s.mut.Lock()
			s.capture = Capture{Endpoint: endpoint, Found: true}
			s.mut.Unlock()
			s.setState(StateEndpointCaptured)
			s.log.Infow("captured endpoint", "Endpoint", endpoint)
			if s.onCapture != nil {
				s.onCapture(endpoint)
			}
		},
	}
	capture, readErr := proc.Process(output)
	if readErr != nil {
		// keep draining so the server doesn't block on a full pipe
		s.log.Debugf("output processing error, discarding remaining output: %s", readErr)
		_, _ = io.Copy(io.Discard, output)
	}

	waitErr := cmd.Wait()
	timeMS := time.Since(start).Milliseconds()
	close(procExitedChan)
	s.setState(StateStopped)

	interruptMut.Lock()
	res := &Result{
		RunID:       s.runID,
		Endpoint:    capture.Endpoint,
		ExitCode:    cmd.ProcessState.ExitCode(),
		TimeMS:      timeMS,
		Interrupted: interrupted,
	}
	interruptMut.Unlock()
	s.log.Infow("server exited", "ExitCode", res.ExitCode, "TimeMS", res.TimeMS, "Interrupted", res.Interrupted)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return res, fmt.Errorf("waiting for server: %w", waitErr)
		}
	}
	if readErr != nil {
		return res, readErr
	}
	return res, nil
}

// terminate requests a graceful shutdown, falling back to a kill where SIGTERM isn't supported.
func terminate(p *os.Process) error {
	err := p.Signal(syscall.SIGTERM)
	if err == nil || errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return p.Kill()
}
