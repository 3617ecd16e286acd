// Package server runs the digest service over HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/health"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/distribution/mdhash/server/handlers"
	"github.com/distribution/mdhash/version"
	gorhandlers "github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// A Server represents a complete instance of the digest service.
type Server struct {
	config *configuration.Configuration
	app    *handlers.App
	server *http.Server
}

// NewServer creates a new server from a context and configuration struct.
func NewServer(ctx context.Context, config *configuration.Configuration) (*Server, error) {
	ctx = dcontext.WithVersion(ctx, version.Version())

	var err error
	ctx, err = ConfigureLogging(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error configuring logger: %v", err)
	}

	app := handlers.NewApp(ctx, config)
	app.RegisterHealthChecks()

	handler := health.Handler(app)
	handler = healthStatus("/debug/health", handler)
	handler = alive("/", handler)
	handler = panicHandler(handler)
	handler = gorhandlers.CombinedLoggingHandler(os.Stdout, handler)

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &Server{
		app:    app,
		config: config,
		server: server,
	}, nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (server *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", server.config.HTTP.Addr)
	if err != nil {
		return err
	}
	return server.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains open
// connections for at most the configured drain timeout.
func (server *Server) Serve(ctx context.Context, ln net.Listener) error {
	dcontext.GetLogger(server.app).Infof("listening on %v", ln.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		drain := server.config.HTTP.DrainTimeout
		dcontext.GetLogger(server.app).Infof("stopping server gracefully. Draining connections for %s", drain)

		shutdownCtx := context.Background()
		if drain > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, drain)
			defer cancel()
		}
		return server.server.Shutdown(shutdownCtx)
	}
}

// panicHandler add a HTTP handler to web app. The handler recover the happening
// panic. logrus.Panic transmits panic message to pre-config log hooks, which is
// defined in config.yml.
func panicHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logrus.Panic(fmt.Sprintf("%v", err))
			}
		}()
		handler.ServeHTTP(w, r)
	})
}

// alive simply wraps the handler with a route that always returns an http 200
// response when the path is matched. If the path is not matched, the request
// is passed to the provided handler. There is no guarantee of anything but
// that the server is up.
func alive(path string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path {
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// healthStatus serves the state of the health checks on path. Requests to
// other paths are passed to handler.
func healthStatus(path string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path {
			health.StatusHandler(w, r)
			return
		}

		handler.ServeHTTP(w, r)
	})
}
