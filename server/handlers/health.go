package handlers

import (
	"net/http"
	"time"

	"github.com/distribution/mdhash/health"
	"github.com/distribution/mdhash/health/checks"
	"github.com/distribution/mdhash/internal/dcontext"
)

const defaultCheckInterval = 10 * time.Second

// RegisterHealthChecks starts polling the checks of the health section of
// the configuration. The checks are added to healthRegistries, or to
// health.DefaultRegistry when none is given, and stop when the app context
// is done.
func (app *App) RegisterHealthChecks(healthRegistries ...*health.Registry) {
	if len(healthRegistries) == 0 {
		healthRegistries = []*health.Registry{health.DefaultRegistry}
	}

	poll := func(name string, check health.Checker, interval time.Duration, threshold int) {
		if interval == 0 {
			interval = defaultCheckInterval
		}
		updater := health.NewThresholdStatusUpdater(threshold)
		for _, registry := range healthRegistries {
			registry.Register(name, updater)
		}
		dcontext.GetLogger(app).Infof("configuring %s check with interval %v and threshold %d", name, interval, threshold)
		go health.Poll(app, updater, check, interval)
	}

	for _, fc := range app.Config.Health.FileCheckers {
		poll("file:"+fc.File, checks.FileChecker(fc.File), fc.Interval, fc.Threshold)
	}

	for _, hc := range app.Config.Health.HTTPCheckers {
		statusCode := hc.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		poll("http:"+hc.URI, checks.HTTPChecker(hc.URI, statusCode), hc.Interval, hc.Threshold)
	}
}
