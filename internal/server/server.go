package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock/internal/logging"
)

// Server runs the HTTP surface until its context is cancelled, then drains
// in-flight requests before returning.
type Server struct {
	addr            string
	engine          *gin.Engine
	log             logging.Logger
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// Options carries the listener tuning for New.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// New wraps a configured gin engine in a managed HTTP server.
func New(opts Options, engine *gin.Engine, log logging.Logger) *Server {
	return &Server{
		addr:            opts.Addr,
		engine:          engine,
		log:             log.With("module", "server"),
		readTimeout:     opts.ReadTimeout,
		writeTimeout:    opts.WriteTimeout,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled. Shutdown waits up to the configured
// timeout for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.engine,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "stopping http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error(ctx, "shutdown did not complete cleanly", "error", err.Error())
		}
	}()

	s.log.Info(ctx, "starting http server", "address", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
