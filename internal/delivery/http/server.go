package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	handlerTimeout    = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server runs the API over HTTP.
type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withTimeout(handler, handlerTimeout),
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// withTimeout answers 503 with an "unavailable" error once d elapses.
// Handlers that finish in time keep their own headers.
func withTimeout(next http.Handler, d time.Duration) http.Handler {
	th := http.TimeoutHandler(next, d, timeoutBody())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		th.ServeHTTP(w, r)
	})
}

// Run serves until the server is closed. stopFn is called when serving ends
// for any reason.
func (s *Server) Run(stopFn context.CancelFunc) {
	const op = "Server.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("HTTP server starting", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected server shutdown", "err", err)
	}
}

func (s *Server) Close(ctx context.Context) {
	const op = "Server.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
