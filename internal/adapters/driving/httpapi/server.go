package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/sapbatch/internal/logger"
)

const shutdownTimeout = 30 * time.Second

// Server runs the handler on a TCP port.
type Server struct {
	addr    string
	handler http.Handler
}

// NewServer creates a server listening on all interfaces at port.
func NewServer(port int, handler *Handler) *Server {
	return &Server{
		addr:    net.JoinHostPort("", strconv.Itoa(port)),
		handler: handler.Routes(),
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", zap.String("addr", listener.Addr().String()))
	served := make(chan error, 1)
	go func() {
		served <- httpServer.Serve(listener)
	}()

	select {
	case err := <-served:
		// Serve failed before shutdown was requested.
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown when context is cancelled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-served; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
