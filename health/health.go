// Package health tracks the readiness of an mdsum server. Checks are
// registered by name and reported by StatusHandler; Handler takes the
// wrapped service out of rotation while any check fails.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/distribution/mdhash/api/errcode"
	"github.com/distribution/mdhash/internal/dcontext"
)

// A Registry is a collection of checks. Most applications use the global
// DefaultRegistry.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Checker
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]Checker)}
}

// DefaultRegistry is the registry used by the package level functions.
var DefaultRegistry = NewRegistry()

// Checker reports whether a component is healthy.
type Checker interface {
	// Check returns nil if the component is okay.
	Check(context.Context) error
}

// CheckFunc adapts a function to the Checker interface.
type CheckFunc func(context.Context) error

// Check calls f(ctx).
func (f CheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// Updater is a Checker whose status is set from the outside, typically by
// Poll.
type Updater interface {
	Checker

	// Update records the latest result of the underlying check.
	Update(status error)
}

type updater struct {
	mu     sync.Mutex
	status error
}

func (u *updater) Check(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

func (u *updater) Update(status error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
}

// NewStatusUpdater returns an Updater that reports the last status it was
// given.
func NewStatusUpdater() Updater {
	return &updater{}
}

type thresholdUpdater struct {
	mu        sync.Mutex
	status    error
	threshold int
	count     int
}

func (tu *thresholdUpdater) Check(context.Context) error {
	tu.mu.Lock()
	defer tu.mu.Unlock()

	if tu.count >= tu.threshold || errors.As(tu.status, new(pollingTerminatedErr)) {
		return tu.status
	}
	return nil
}

func (tu *thresholdUpdater) Update(status error) {
	tu.mu.Lock()
	defer tu.mu.Unlock()

	if status == nil {
		tu.count = 0
	} else if tu.count < tu.threshold {
		tu.count++
	}
	tu.status = status
}

// NewThresholdStatusUpdater returns an Updater that only reports a failure
// once t consecutive updates have failed.
func NewThresholdStatusUpdater(t int) Updater {
	if t > 0 {
		return &thresholdUpdater{threshold: t}
	}
	return NewStatusUpdater()
}

type pollingTerminatedErr struct{ Err error }

func (e pollingTerminatedErr) Error() string {
	return fmt.Sprintf("health: check is not polled: %v", e.Err)
}

func (e pollingTerminatedErr) Unwrap() error { return e.Err }

// Poll runs check every period and feeds the result to u until ctx is
// done. The final status of u is then the context's error.
func Poll(ctx context.Context, u Updater, check Checker, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			u.Update(pollingTerminatedErr{Err: ctx.Err()})
			return
		case <-t.C:
			u.Update(check.Check(ctx))
		}
	}
}

// CheckStatus returns the error of every failing check, keyed by name.
func (r *Registry) CheckStatus(ctx context.Context) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := make(map[string]string)
	for name, c := range r.checks {
		if err := c.Check(ctx); err != nil {
			status[name] = err.Error()
		}
	}
	return status
}

// CheckStatus checks the DefaultRegistry.
func CheckStatus(ctx context.Context) map[string]string {
	return DefaultRegistry.CheckStatus(ctx)
}

// Register adds a named check. Registering the same name twice panics.
func (r *Registry) Register(name string, check Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.checks[name]; ok {
		panic("health: check already exists: " + name)
	}
	r.checks[name] = check
}

// Register adds a named check to the DefaultRegistry.
func Register(name string, check Checker) {
	DefaultRegistry.Register(name, check)
}

// RegisterFunc registers a plain function as a check.
func RegisterFunc(name string, check func(context.Context) error) {
	Register(name, CheckFunc(check))
}

// StatusHandler writes the failing checks of the DefaultRegistry as a JSON
// object. The response is 503 when any check fails.
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	status := CheckStatus(r.Context())
	code := http.StatusOK
	if len(status) != 0 {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		dcontext.GetLogger(r.Context()).Errorf("error encoding health status: %v", err)
	}
}

// Handler returns 503 with an UNAVAILABLE error while any check of the
// DefaultRegistry fails, and otherwise passes the request to handler.
func Handler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := CheckStatus(r.Context())
		if len(status) != 0 {
			if err := errcode.ServeJSON(w, errcode.ErrorCodeUnavailable.WithDetail(status)); err != nil {
				dcontext.GetLogger(r.Context()).Errorf("error serving error json: %v", err)
			}
			return
		}
		handler.ServeHTTP(w, r)
	})
}
