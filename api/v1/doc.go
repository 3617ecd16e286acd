// Package v1 describes the routes of the digest service. Handlers are
// attached by name so the router can be shared by the server and tests.
package v1
