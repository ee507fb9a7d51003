package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// StatusSource is what the status server reports on. *Supervisor implements it.
type StatusSource interface {
	RunID() string
	State() State
	Capture() Capture
}

type StatusResponse struct {
	RunID    string
	State    string
	Endpoint string `json:",omitempty"`
}

// StatusServer exposes the launcher state over HTTP, so the endpoint can be fetched without scraping the console.
type StatusServer struct {
	log        *zap.SugaredLogger
	source     StatusSource
	listenAddr string

	httpServer *http.Server
	listener   net.Listener
}

func NewStatusServer(log *zap.SugaredLogger, source StatusSource, listenAddr string) *StatusServer {
	return &StatusServer{
		log:        log.Named("status_server"),
		source:     source,
		listenAddr: listenAddr,
	}
}

func (s *StatusServer) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/status", s.status)
	router.GET("/endpoint", s.endpoint)
	return router
}

// Start listens on the configured address and serves in the background.
func (s *StatusServer) Start() error {
	l, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listening TCP: %w", err)
	}
	s.listener = l
	s.httpServer = &http.Server{Handler: s.Handler()}
	s.log.Infow("serving status", "Addr", l.Addr().String())
	go func() {
		err := s.httpServer.Serve(l)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("status server stopped: %s", err)
		}
	}()
	return nil
}

// Addr returns the address the server is listening on, once started.
func (s *StatusServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *StatusServer) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *StatusServer) status(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	capture := s.source.Capture()
	resp := StatusResponse{
		RunID:    s.source.RunID(),
		State:    s.source.State().String(),
		Endpoint: capture.Endpoint,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(b)
}

func (s *StatusServer) endpoint(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	capture := s.source.Capture()
	if !capture.Found {
		http.Error(w, "endpoint not captured yet", http.StatusNotFound)
		return
	}
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, capture.Endpoint)
}
