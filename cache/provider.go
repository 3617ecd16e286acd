package cache

import (
	"context"
	"fmt"
	"sort"
)

// InitFunc is the type of a Provider factory function and is used to
// register the constructor for different Provider backends.
type InitFunc func(ctx context.Context, options map[string]interface{}) (Provider, error)

var providers map[string]InitFunc

// Register is used to register an InitFunc for a Provider backend with the
// given name.
func Register(name string, initFunc InitFunc) error {
	if providers == nil {
		providers = make(map[string]InitFunc)
	}
	if _, exists := providers[name]; exists {
		return fmt.Errorf("name already registered: %s", name)
	}

	providers[name] = initFunc

	return nil
}

// Create constructs a Provider with the given options using the named
// backend.
func Create(ctx context.Context, name string, options map[string]interface{}) (Provider, error) {
	if initFunc, exists := providers[name]; exists {
		return initFunc(ctx, options)
	}
	return nil, fmt.Errorf("no cache provider registered with name: %s", name)
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
