package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/distribution/mdhash/cache"
	_ "github.com/distribution/mdhash/cache/buntdb"
	_ "github.com/distribution/mdhash/cache/memory"
	"github.com/distribution/mdhash/cache/metrics"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/internal/dcontext"
)

// configurationPathEnv names a configuration file when --config is not
// given.
const configurationPathEnv = "MDSUM_CONFIGURATION_PATH"

// resolveConfiguration parses the configuration file named by path or by
// the environment. Without either, the defaults are used, still subject to
// MDSUM_* overrides.
func resolveConfiguration(path string) (*configuration.Configuration, error) {
	if path == "" {
		path = os.Getenv(configurationPathEnv)
	}

	if path == "" {
		return configuration.Parse(strings.NewReader("version: " + string(configuration.CurrentVersion)))
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", path, err)
	}

	return config, nil
}

// createCache builds the configured digest cache, if any. The returned
// closer releases it and is never nil.
func createCache(ctx context.Context, config *configuration.Configuration) (cache.Provider, func(), error) {
	name := config.Cache.Type()
	if name == "" {
		return nil, func() {}, nil
	}

	provider, err := cache.Create(ctx, name, config.Cache.Options())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to construct %s cache: %w", name, err)
	}
	dcontext.GetLogger(ctx).Debugf("using %s digest cache", name)

	closer := func() {}
	if c, ok := provider.(io.Closer); ok {
		closer = func() {
			if err := c.Close(); err != nil {
				dcontext.GetLogger(ctx).Warnf("closing %s cache: %v", name, err)
			}
		}
	}
	return metrics.NewPrometheusCacheProvider(provider, name), closer, nil
}
