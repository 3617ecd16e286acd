package configuration

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/checksum"
)

// Configuration is a versioned mdsum configuration, intended to be provided
// by a yaml file, and optionally modified by environment variables.
//
// Note that yaml field names should never include _ characters, since this
// is the separator used in environment variable names.
type Configuration struct {
	// Version is the version which defines the format of the rest of the configuration
	Version Version `yaml:"version"`

	// Log supports setting various parameters related to the logging
	// subsystem.
	Log Log `yaml:"log"`

	// Hash selects the algorithm and how inputs are read.
	Hash Hash `yaml:"hash"`

	// Cache names the digest cache provider and its parameters. No cache
	// is used when it is empty.
	Cache Cache `yaml:"cache,omitempty"`

	// HTTP contains configuration parameters for the digest service.
	HTTP HTTP `yaml:"http,omitempty"`

	// Health provides the configuration section for health checks.
	Health Health `yaml:"health,omitempty"`
}

// Log configures the logging subsystem.
type Log struct {
	// Level is the granularity at which operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides the default formatter with another. Options
	// include "text", "json" and "logstash".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields allows users to specify static string fields to include in
	// the logger context.
	Fields map[string]interface{} `yaml:"fields,omitempty"`

	// ReportCaller allows user to configure the log to report the caller
	ReportCaller bool `yaml:"reportcaller,omitempty"`
}

// Hash configures the hashing front end.
type Hash struct {
	// Algorithm is used when no algorithm is given on the command line.
	Algorithm mdhash.Algorithm `yaml:"algorithm"`

	// BufferSize is the size of each read from an input.
	BufferSize int `yaml:"buffersize,omitempty"`

	// Workers bounds the number of files hashed concurrently.
	Workers int `yaml:"workers,omitempty"`

	// Format is the output format of checksum lines.
	Format checksum.Format `yaml:"format"`

	// Force allows hashing devices and other files that are not regular.
	Force bool `yaml:"force,omitempty"`
}

// HTTP configures the digest service.
type HTTP struct {
	// Addr specifies the bind address for the service.
	Addr string `yaml:"addr,omitempty"`

	// MaxBodySize is the largest request body, in bytes, the service will
	// hash.
	MaxBodySize int64 `yaml:"maxbodysize,omitempty"`

	// DrainTimeout is the amount of time to wait for connections to drain
	// before shutting down when the service receives a stop signal.
	DrainTimeout time.Duration `yaml:"draintimeout,omitempty"`

	// RateLimit throttles requests with a token bucket. Zero disables it.
	RateLimit RateLimit `yaml:"ratelimit,omitempty"`

	// Metrics exposes prometheus metrics on the service.
	Metrics Metrics `yaml:"metrics,omitempty"`
}

// RateLimit configures the request token bucket.
type RateLimit struct {
	// Rate is the number of requests per second allowed on average.
	Rate float64 `yaml:"rate,omitempty"`

	// Burst is the number of requests allowed at once.
	Burst int `yaml:"burst,omitempty"`
}

// Metrics configures the prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// Health provides the configuration section for health checks.
type Health struct {
	// FileCheckers is a list of paths to check
	FileCheckers []FileChecker `yaml:"file,omitempty"`
	// HTTPCheckers is a list of URIs to check
	HTTPCheckers []HTTPChecker `yaml:"http,omitempty"`
}

// FileChecker is a type of entry in the health section for checking files.
type FileChecker struct {
	// Interval is the duration in between checks
	Interval time.Duration `yaml:"interval,omitempty"`
	// File is the path to check
	File string `yaml:"file,omitempty"`
	// Threshold is the number of times a check must fail to trigger an
	// unhealthy state
	Threshold int `yaml:"threshold,omitempty"`
}

// HTTPChecker is a type of entry in the health section for checking HTTP
// URIs.
type HTTPChecker struct {
	// Interval is the duration in between checks
	Interval time.Duration `yaml:"interval,omitempty"`
	// URI is the HTTP URI to check
	URI string `yaml:"uri,omitempty"`
	// StatusCode is the expected status code, 200 when unset
	StatusCode int `yaml:"statuscode,omitempty"`
	// Threshold is the number of times a check must fail to trigger an
	// unhealthy state
	Threshold int `yaml:"threshold,omitempty"`
}

// v0_1Configuration is a Version 0.1 Configuration struct
// This is currently aliased to Configuration, as it is the current version
type v0_1Configuration Configuration

// UnmarshalYAML implements the yaml.Unmarshaler interface
// Unmarshals a string of the form X.Y into a Version, validating that X and Y can represent uints
func (version *Version) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var versionString string
	err := unmarshal(&versionString)
	if err != nil {
		return err
	}

	newVersion := Version(versionString)
	if _, err := newVersion.major(); err != nil {
		return err
	}

	if _, err := newVersion.minor(); err != nil {
		return err
	}

	*version = newVersion
	return nil
}

// CurrentVersion is the most recent Version that can be parsed
var CurrentVersion = MajorMinorVersion(0, 1)

// Loglevel is the level at which operations are logged
// This can be error, warn, info, or debug
type Loglevel string

// UnmarshalYAML implements the yaml.Umarshaler interface
// Unmarshals a string into a Loglevel, lowercasing the string and validating that it represents a
// valid loglevel
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var loglevelString string
	err := unmarshal(&loglevelString)
	if err != nil {
		return err
	}

	loglevelString = strings.ToLower(loglevelString)
	switch loglevelString {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s Must be one of [error, warn, info, debug]", loglevelString)
	}

	*loglevel = Loglevel(loglevelString)
	return nil
}

// Parameters defines a key-value parameters mapping
type Parameters map[string]interface{}

// Cache defines the configuration for the digest cache
type Cache map[string]Parameters

// Type returns the cache provider type, such as inmemory or buntdb
func (cache Cache) Type() string {
	// Return only key in this map
	for k := range cache {
		return k
	}
	return ""
}

// Parameters returns the Parameters map for a Cache configuration
func (cache Cache) Parameters() Parameters {
	return cache[cache.Type()]
}

// setParameter changes the parameter at the provided key to the new value
func (cache Cache) setParameter(key string, value interface{}) {
	cache[cache.Type()][key] = value
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
// Unmarshals a single item map into a Cache or a string into a Cache type with no parameters
func (cache *Cache) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var cacheMap map[string]Parameters
	err := unmarshal(&cacheMap)
	if err == nil {
		if len(cacheMap) > 1 {
			types := make([]string, 0, len(cacheMap))
			for k := range cacheMap {
				types = append(types, k)
			}
			return fmt.Errorf("must provide exactly one cache type. Provided: %v", types)
		}
		*cache = cacheMap
		return nil
	}

	var cacheType string
	err = unmarshal(&cacheType)
	if err == nil {
		*cache = Cache{cacheType: Parameters{}}
		return nil
	}

	return err
}

// MarshalYAML implements the yaml.Marshaler interface
func (cache Cache) MarshalYAML() (interface{}, error) {
	if len(cache) == 0 {
		return nil, nil
	}
	if cache.Parameters() == nil {
		return cache.Type(), nil
	}
	return map[string]Parameters(cache), nil
}

// Options returns the options map handed to cache.Create.
func (cache Cache) Options() map[string]interface{} {
	return map[string]interface{}{"params": map[string]interface{}(cache.Parameters())}
}

const (
	// DefaultAddr is the bind address of the digest service.
	DefaultAddr = ":5080"

	// DefaultMaxBodySize is the largest request body hashed by default.
	DefaultMaxBodySize = 1 << 30

	// DefaultMetricsPath is where metrics are served when enabled.
	DefaultMetricsPath = "/metrics"
)

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	config := &Configuration{Version: CurrentVersion}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Configuration) {
	if config.Log.Level == Loglevel("") {
		config.Log.Level = Loglevel("info")
	}
	if config.Hash.Algorithm == 0 {
		config.Hash.Algorithm = mdhash.SHA256
	}
	if config.Hash.BufferSize <= 0 {
		config.Hash.BufferSize = checksum.DefaultBufferSize
	}
	if config.Hash.Workers <= 0 {
		config.Hash.Workers = checksum.DefaultWorkers
	}
	if config.HTTP.Addr == "" {
		config.HTTP.Addr = DefaultAddr
	}
	if config.HTTP.MaxBodySize <= 0 {
		config.HTTP.MaxBodySize = DefaultMaxBodySize
	}
	if config.HTTP.Metrics.Path == "" {
		config.HTTP.Metrics.Path = DefaultMetricsPath
	}
}

// Parse parses an input configuration yaml document into a Configuration struct
// This should generally be capable of handling old configuration format versions
//
// Environment variables may be used to override configuration parameters other than version,
// following the scheme below:
// Configuration.Abc may be replaced by the value of MDSUM_ABC,
// Configuration.Abc.Xyz may be replaced by the value of MDSUM_ABC_XYZ, and so forth
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	p := NewParser("mdsum", []VersionedParseInfo{
		{
			Version: MajorMinorVersion(0, 1),
			ParseAs: reflect.TypeOf(v0_1Configuration{}),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				if v0_1, ok := c.(*v0_1Configuration); ok {
					config := (*Configuration)(v0_1)
					if len(config.Cache) > 1 {
						return nil, fmt.Errorf("must provide exactly one cache type")
					}
					if config.HTTP.RateLimit.Rate < 0 || config.HTTP.RateLimit.Burst < 0 {
						return nil, fmt.Errorf("invalid rate limit %+v", config.HTTP.RateLimit)
					}
					applyDefaults(config)
					return config, nil
				}
				return nil, fmt.Errorf("expected *v0_1Configuration, received %#v", c)
			},
		},
	})

	config := new(Configuration)
	err = p.Parse(in, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
