// Package http hosts the API server and JSON response helpers
package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"artisantrend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps a chi mux in an http.Server with graceful shutdown
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer builds a server listening on addr; opts mount routes and middleware on the mux
func NewServer(addr string, opts ...func(chi.Router)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the mux, mainly for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then shuts down with a 10s grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("http shutting down")
		return s.srv.Shutdown(sctx)
	}
}
