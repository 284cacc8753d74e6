// Package server runs the HTTP transport: startup, signal handling, and
// graceful shutdown. Cancelling the run context (SIGINT, SIGTERM, SIGQUIT)
// drains in-flight requests before the process exits.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
)

// shutdownTimeout bounds how long draining in-flight requests may take.
const shutdownTimeout = 10 * time.Second

// Server hosts the HTTP API.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

// NewServer builds the server around the given route table.
func NewServer(routes http.Handler, cfg config.Server, logger *logger.Logger) (*Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoListenAddress
	}

	if cfg.RequestTimeout > 0 {
		routes = http.TimeoutHandler(routes, cfg.RequestTimeout, "request timed out")
	}

	return &Server{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           routes,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}, nil
}

// Run serves requests until a stop signal arrives, then shuts down
// gracefully. It blocks for the lifetime of the process.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.server.Addr).Msg("http server listening")
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Err(err).Msg("graceful shutdown failed")
		return err
	}

	s.logger.Info().Msg("server shut down gracefully")
	return nil
}
