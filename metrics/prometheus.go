package metrics

import "github.com/docker/go-metrics"

const (
	// NamespacePrefix is the namespace of prometheus metrics
	NamespacePrefix = "mdhash"
)

var (
	// ChecksumNamespace is the prometheus namespace of file hashing operations
	ChecksumNamespace = metrics.NewNamespace(NamespacePrefix, "checksum", nil)

	// CacheNamespace is the prometheus namespace of digest cache operations
	CacheNamespace = metrics.NewNamespace(NamespacePrefix, "cache", nil)

	// HTTPNamespace is the prometheus namespace of the digest service
	HTTPNamespace = metrics.NewNamespace(NamespacePrefix, "http", nil)
)
