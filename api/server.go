package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
	shutdown   time.Duration
}

func NewServer(cfg config.AppConfig, handler http.Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log:      log,
		shutdown: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(s.log.WithField(ctx, "addr", s.httpServer.Addr), "api server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	s.log.Info(ctx, "api server draining")
	return s.httpServer.Shutdown(shutdownCtx)
}
