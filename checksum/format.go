package checksum

import (
	"fmt"
	"strings"
)

// Format selects how checksum lines are written.
type Format int

const (
	// GNU writes "<hex>  <path>", as md5sum and sha256sum do.
	GNU Format = iota
	// BSD writes tagged lines, "SHA256 (<path>) = <hex>".
	BSD
	// DigestFormat writes "<algorithm>:<hex>  <path>".
	DigestFormat
	// MultihashFormat writes the base58 multihash followed by the path.
	MultihashFormat
)

var formatNames = []string{
	GNU:             "gnu",
	BSD:             "bsd",
	DigestFormat:    "digest",
	MultihashFormat: "multihash",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown checksum format %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(formatNames) {
		return nil, fmt.Errorf("unknown checksum format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
