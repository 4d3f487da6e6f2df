package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"mini-weather/internal/game"
)

// Server runs a session in real time and streams it on /ws.
type Server struct {
	Addr    string
	Session *game.Session
	Hub     *Hub
	Step    game.FixedStep

	http   *http.Server
	frames atomic.Int64
}

// NewServer wires a hub for s. dt is the simulated step per frame.
func NewServer(addr string, s *game.Session, dt float64) (*Server, error) {
	hub, err := NewHub(game.Summarize(s.World, true))
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Addr:    addr,
		Session: s,
		Hub:     hub,
		Step:    game.FixedStep{Dt: dt, Limiter: game.NewFPSLimiter()},
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok frames=%d viewers=%d\n", srv.frames.Load(), hub.Clients())
	})
	srv.http = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv, nil
}

// Handler exposes the routes, mostly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down the listener and
// disconnects viewers.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (ws endpoint: /ws)", s.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			cancel()
		}
		close(errc)
	}()

	loopErr := s.Step.Run(ctx, s.Session, 0, func(f game.Frame) error {
		s.frames.Store(int64(f.Index))
		s.drainCommands()
		return s.Hub.Broadcast(f)
	})

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = s.http.Shutdown(shutdownCtx)
	s.Hub.Close()

	if err, ok := <-errc; ok && err != nil {
		return fmt.Errorf("serving %s: %w", s.Addr, err)
	}
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) && !errors.Is(loopErr, context.DeadlineExceeded) {
		return loopErr
	}
	return nil
}

func (s *Server) drainCommands() {
	for {
		select {
		case cmd := <-s.Hub.Commands():
			cmd.Apply(s.Session)
		default:
			return
		}
	}
}
