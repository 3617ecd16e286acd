// Package handlers implements the HTTP digest service: hashing request
// bodies, verifying them against a digest and listing the algorithms.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/distribution/mdhash/api/errcode"
	v1 "github.com/distribution/mdhash/api/v1"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// App is the digest service application object. Shared resources can be
// placed on this object that will be accessible from all requests.
type App struct {
	context.Context
	Config *configuration.Configuration

	router  *mux.Router   // main application router, configured with dispatchers
	limiter *rate.Limiter // limiter throttles requests, nil when disabled
}

// NewApp takes a configuration and returns a configured app, ready to serve
// requests. The app only implements ServeHTTP and can be wrapped in other
// handlers accordingly.
func NewApp(ctx context.Context, config *configuration.Configuration) *App {
	app := &App{
		Context: ctx,
		Config:  config,
		router:  v1.Router(),
	}

	// Register the handler dispatchers.
	app.register(v1.RouteNameBase, func(ctx *Context, r *http.Request) http.Handler {
		return http.HandlerFunc(apiBase)
	})
	app.register(v1.RouteNameDigest, digestDispatcher)
	app.register(v1.RouteNameVerify, verifyDispatcher)
	app.register(v1.RouteNameAlgorithms, algorithmsDispatcher)

	if config.HTTP.Metrics.Enabled {
		app.router.Handle(config.HTTP.Metrics.Path, metricsHandler())
		dcontext.GetLogger(app).Infof("serving metrics on %s", config.HTTP.Metrics.Path)
	}

	if rl := config.HTTP.RateLimit; rl.Rate > 0 {
		burst := rl.Burst
		if burst <= 0 {
			burst = 1
		}
		app.limiter = rate.NewLimiter(rate.Limit(rl.Rate), burst)
	}

	return app
}

// register a handler with the application, by route name. The handler will be
// passed through the application filters and context will be constructed at
// request time.
func (app *App) register(routeName string, dispatch dispatchFunc) {
	app.router.GetRoute(routeName).Handler(app.dispatcher(routeName, dispatch))
}

func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close() // ensure that request body is always closed.

	w.Header().Add("Mdhash-API-Version", "mdhash/1.0")
	app.router.ServeHTTP(w, r)
}

// dispatchFunc takes a context and request and returns a constructed handler
// for the route. The dispatcher will use this to dynamically create request
// specific handlers for each endpoint without creating a new router for each
// request.
type dispatchFunc func(ctx *Context, r *http.Request) http.Handler

// singleStatusResponseWriter only allows the first status to be written to be
// the valid request status.
type singleStatusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (ssrw *singleStatusResponseWriter) WriteHeader(status int) {
	if ssrw.status != 0 {
		return
	}
	ssrw.status = status
	ssrw.ResponseWriter.WriteHeader(status)
}

func (ssrw *singleStatusResponseWriter) Write(p []byte) (int, error) {
	if ssrw.status == 0 {
		ssrw.status = http.StatusOK
	}
	return ssrw.ResponseWriter.Write(p)
}

// dispatcher returns a handler that constructs a request specific context and
// handler, using the dispatch factory function.
func (app *App) dispatcher(routeName string, dispatch dispatchFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestCounter.Incr(1)

		context := app.context(r)
		ssrw := &singleStatusResponseWriter{ResponseWriter: w}
		ssrw.Header().Set("X-Request-Id", dcontext.GetRequestID(context))

		defer func() {
			status := ssrw.status
			if status == 0 {
				status = http.StatusOK
			}
			code := strconv.Itoa(status)
			requests.WithValues(routeName, code).Inc(1)
			observeDuration(start, requestDuration, routeName, code)
			dcontext.GetLoggerWithFields(context, map[string]any{
				"http.response.status":   status,
				"http.response.duration": time.Since(start).String(),
			}).Infof("response completed")
		}()

		if app.limiter != nil && !app.limiter.Allow() {
			context.Errors = append(context.Errors, errcode.ErrorCodeTooManyRequests)
		} else {
			dispatch(context, r).ServeHTTP(ssrw, r)
		}

		// Automated error response handling here. Handlers may return their
		// own errors if they need different behavior.
		if context.Errors.Len() > 0 {
			if err := errcode.ServeJSON(ssrw, context.Errors); err != nil {
				dcontext.GetLogger(context).Errorf("error serving error json: %v (from %v)", err, context.Errors)
			}
		}
	})
}

// context constructs the context object for the application. This only be
// called once per request.
func (app *App) context(r *http.Request) *Context {
	ctx := dcontext.WithLogger(r.Context(), dcontext.GetLogger(app))
	ctx = dcontext.WithRequestID(ctx)

	fields := map[string]any{
		"http.request.method":     r.Method,
		"http.request.uri":        r.RequestURI,
		"http.request.remoteaddr": r.RemoteAddr,
	}
	for k, v := range mux.Vars(r) {
		fields["vars."+k] = v
	}
	ctx = dcontext.WithLogger(ctx, dcontext.GetLoggerWithFields(ctx, fields))

	return &Context{
		App:     app,
		Context: ctx,
	}
}

// apiBase implements a simple yes-man for doing overall checks against the
// api.
func apiBase(w http.ResponseWriter, r *http.Request) {
	const emptyJSON = "{}"
	// Provide a simple /v1/ 200 OK response with empty json response.
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(emptyJSON)))

	_, _ = w.Write([]byte(emptyJSON))
}
