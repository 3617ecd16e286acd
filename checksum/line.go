package checksum

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/digest"
)

// ErrMalformedLine is returned by ParseLine for lines that are not in any
// of the supported formats.
var ErrMalformedLine = errors.New("improperly formatted checksum line")

// Line is one entry of a checksum list.
type Line struct {
	Digest digest.Digest
	Path   string

	// Binary marks GNU lines written with "*" before the path. It is kept
	// for round trips only; files are always read as bytes.
	Binary bool
}

var bsdTags = map[mdhash.Algorithm]string{
	mdhash.MD4:       "MD4",
	mdhash.MD5:       "MD5",
	mdhash.RIPEMD160: "RMD160",
	mdhash.SHA1:      "SHA1",
	mdhash.SHA224:    "SHA224",
	mdhash.SHA256:    "SHA256",
	mdhash.SHA384:    "SHA384",
	mdhash.SHA512:    "SHA512",
}

// Tag returns the name alg is written under in BSD style lines.
func Tag(alg mdhash.Algorithm) string {
	return bsdTags[alg]
}

var bsdLine = regexp.MustCompile(`^([A-Za-z0-9-]+) ?\((.*)\) = ([0-9a-fA-F]+)$`)

func parseTag(tag string) (mdhash.Algorithm, error) {
	for alg, t := range bsdTags {
		if strings.EqualFold(t, tag) {
			return alg, nil
		}
	}
	return mdhash.ParseAlgorithm(tag)
}

// escapePath follows coreutils: names holding a backslash or newline are
// escaped and the whole line is prefixed with a backslash.
func escapePath(path string) (string, bool) {
	if !strings.ContainsAny(path, "\\\n") {
		return path, false
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	return r.Replace(path), true
}

func unescapePath(path string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		if path[i] != '\\' {
			b.WriteByte(path[i])
			continue
		}
		i++
		if i == len(path) {
			return "", ErrMalformedLine
		}
		switch path[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		default:
			return "", ErrMalformedLine
		}
	}
	return b.String(), nil
}

// Format renders l without a trailing newline.
func (l Line) Format(f Format) (string, error) {
	if err := l.Digest.Validate(); err != nil {
		return "", err
	}
	path, escaped := escapePath(l.Path)
	prefix := ""
	if escaped {
		prefix = `\`
	}

	switch f {
	case GNU:
		mode := " "
		if l.Binary {
			mode = "*"
		}
		return prefix + l.Digest.Hex() + " " + mode + path, nil
	case BSD:
		return prefix + bsdTags[l.Digest.Algorithm()] + " (" + path + ") = " + l.Digest.Hex(), nil
	case DigestFormat:
		return prefix + l.Digest.String() + "  " + path, nil
	case MultihashFormat:
		b58, err := l.Digest.B58()
		if err != nil {
			return "", err
		}
		return prefix + b58 + "  " + path, nil
	}
	return "", fmt.Errorf("unknown checksum format %v", f)
}

// ParseLine parses one line of a checksum list written in any Format. Bare
// hex digests in GNU lines are interpreted with alg.
func ParseLine(s string, alg mdhash.Algorithm) (Line, error) {
	s = strings.TrimSuffix(s, "\r")
	escaped := strings.HasPrefix(s, `\`)
	if escaped {
		s = s[1:]
	}

	line, err := parseLine(s, alg)
	if err != nil {
		return Line{}, err
	}
	if escaped {
		if line.Path, err = unescapePath(line.Path); err != nil {
			return Line{}, err
		}
	}
	if line.Path == "" {
		return Line{}, ErrMalformedLine
	}
	return line, nil
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func parseLine(s string, alg mdhash.Algorithm) (Line, error) {
	if m := bsdLine.FindStringSubmatch(s); m != nil {
		tagged, err := parseTag(m[1])
		if err != nil {
			return Line{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		d, err := digest.Parse(string(digest.NewDigestFromHex(tagged, strings.ToLower(m[3]))))
		if err != nil {
			return Line{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		return Line{Digest: d, Path: m[2]}, nil
	}

	sum, rest, ok := strings.Cut(s, " ")
	if !ok || len(rest) < 2 {
		return Line{}, ErrMalformedLine
	}
	line := Line{Path: rest[1:]}
	switch rest[0] {
	case ' ':
	case '*':
		line.Binary = true
	default:
		return Line{}, ErrMalformedLine
	}

	var err error
	switch {
	case strings.Contains(sum, ":"):
		line.Digest, err = digest.Parse(sum)
	case alg.Available() && len(sum) == 2*alg.Size() && isHex(sum):
		line.Digest, err = digest.Parse(string(digest.NewDigestFromHex(alg, strings.ToLower(sum))))
	default:
		line.Digest, err = digest.FromB58(sum)
	}
	if err != nil {
		return Line{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return line, nil
}
