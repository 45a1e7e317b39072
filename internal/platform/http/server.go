package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"fxconvert/internal/config"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Start serves handler until ctx is canceled, then drains in-flight requests.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return serve(ctx, listener, cfg, handler)
}

func serve(ctx context.Context, listener net.Listener, cfg config.HTTPServer, handler http.Handler) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// leave room for the per-request timeout middleware to answer first
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logrus.Info("Shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}
