// Package server runs the HTTP API on net/http or fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/Simplici0/costsheet/internal/api"
	"github.com/Simplici0/costsheet/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// NewRouter wires the middleware stack in front of the API routes.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Register(r)
	return r
}

// Run listens on addr and serves handler until ctx is cancelled.
func Run(ctx context.Context, engine, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, engine, ln, handler)
}

// Serve serves handler on ln with the given engine and shuts down gracefully once ctx is
// cancelled. Serve closes ln.
func Serve(ctx context.Context, engine string, ln net.Listener, handler http.Handler) error {
	switch engine {
	case config.EngineFastHTTP:
		return serveFastHTTP(ctx, ln, handler)
	case config.EngineNetHTTP, "":
		return serveNetHTTP(ctx, ln, handler)
	}
	ln.Close()
	return fmt.Errorf("unknown server engine %q", engine)
}

func serveNetHTTP(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func serveFastHTTP(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &fasthttp.Server{
		Name:        "costsheet",
		Handler:     fasthttpadaptor.NewFastHTTPHandler(handler),
		ReadTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve fasthttp: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown fasthttp server: %w", err)
	}
	return nil
}
