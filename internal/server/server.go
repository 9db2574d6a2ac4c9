package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/internal/handler"
	"github.com/valentinpelus/signal/internal/metrics"
	"github.com/valentinpelus/signal/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server
type Server struct {
	port            string
	feedbackHandler *handler.FeedbackHandler
	authMiddleware  *middleware.AuthMiddleware
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// New creates a new HTTP server
func New(port string, auth *middleware.AuthMiddleware, feedbackHandler *handler.FeedbackHandler, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		port:            port,
		feedbackHandler: feedbackHandler,
		authMiddleware:  auth,
		metrics:         m,
		logger:          logger,
	}
}

// Routes configures HTTP routes. Writes require authentication, reads do not.
func (s *Server) Routes() http.Handler {
	auth := s.authMiddleware.Authenticate
	h := s.feedbackHandler

	mux := http.NewServeMux()
	mux.HandleFunc("POST /feedback", auth(h.HandleSubmit))
	mux.HandleFunc("POST /feedback/import", auth(h.HandleImport))
	mux.HandleFunc("GET /feedback", h.HandleList)
	mux.HandleFunc("GET /feedback/{id}", h.HandleGet)
	mux.HandleFunc("DELETE /feedback/{id}", auth(h.HandleDelete))
	mux.HandleFunc("GET /insights", h.HandleInsights)
	mux.HandleFunc("GET /report", h.HandleReport)
	mux.HandleFunc("POST /report/deliver", auth(h.HandleDeliver))
	mux.HandleFunc("GET /health", handler.HandleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return middleware.Logging(s.logger, mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh
	return nil
}
