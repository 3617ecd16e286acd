// Package dcontext carries the logger, the process instance id and request
// scoped values on a context.Context.
package dcontext

import (
	"context"
	"sync"

	"github.com/distribution/mdhash/internal/uuid"
)

var (
	instanceID     string
	instanceIDOnce sync.Once
)

type instanceIDKey struct{}

func (instanceIDKey) String() string { return "instance.id" }

// Background returns a non-nil, empty Context tagged with the id of this
// process so every log line of one run can be correlated.
func Background() context.Context {
	instanceIDOnce.Do(func() {
		instanceID = uuid.NewString()
	})
	return context.WithValue(context.Background(), instanceIDKey{}, instanceID)
}

type versionKey struct{}

func (versionKey) String() string { return "version" }

// WithVersion stores the application version in the context. The new context
// gets a logger to ensure log messages are marked with the application
// version.
func WithVersion(ctx context.Context, version string) context.Context {
	ctx = context.WithValue(ctx, versionKey{}, version)
	// push a new logger onto the stack
	return WithLogger(ctx, GetLogger(ctx, versionKey{}))
}

// GetVersion returns the application version from the context. An empty
// string may returned if the version was not set on the context.
func GetVersion(ctx context.Context) string {
	v, _ := ctx.Value(versionKey{}).(string)
	return v
}

type requestIDKey struct{}

func (requestIDKey) String() string { return "http.request.id" }

// WithRequestID returns a context carrying a new request id and a logger
// that reports it.
func WithRequestID(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, uuid.NewString())
	return WithLogger(ctx, GetLogger(ctx, requestIDKey{}))
}

// GetRequestID returns the request id stored by WithRequestID.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}
