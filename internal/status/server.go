package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
)

// Server hosts the status surface on the configured localhost address.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

func NewServer(address string, handler *Handler, logger *logger.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              address,
			Handler:           handler.Init(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until Shutdown is called.
func (s *Server) Run() {
	s.logger.Info().
		Str("func", "Server.Run").
		Str("address", s.server.Addr).
		Msg("status server listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().
			Str("func", "Server.Run").
			Err(err).
			Msg("status server stopped")
	}
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().
			Str("func", "Server.Shutdown").
			Err(err).
			Msg("status server shutdown failed")
	}
}
