package checksum

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ErrMismatch is set on a CheckResult whose file hashed to another digest.
var ErrMismatch = errors.New("checksum did not match")

// CheckResult reports the verification of one line of a checksum list.
type CheckResult struct {
	// Line is the 1-based line number in the list.
	Line int
	Path string
	OK   bool

	// Err is ErrMismatch for digest mismatches and the wrapped I/O or
	// parse error otherwise.
	Err error
}

// CheckSummary counts the outcomes of a Check run.
type CheckSummary struct {
	Total      int
	Failed     int
	Unreadable int
	Malformed  int
}

// OK reports whether every well formed line matched and at least one line
// was checked.
func (s CheckSummary) OK() bool {
	return s.Total > 0 && s.Failed == 0 && s.Unreadable == 0
}

// Check reads a checksum list from r and re-hashes every file it names.
// Malformed lines are counted and reported, not fatal. The returned error
// is only set when r itself cannot be read or ctx is cancelled.
func (h *Hasher) Check(ctx context.Context, r io.Reader) ([]CheckResult, CheckSummary, error) {
	var (
		results []CheckResult
		summary CheckSummary
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), 1<<20)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		line, err := ParseLine(text, h.Algorithm)
		if err != nil {
			summary.Malformed++
			results = append(results, CheckResult{Line: lineno, Err: err})
			continue
		}

		summary.Total++
		verifier := line.Digest.Verifier()
		res := h.sumFile(ctx, line.Digest.Algorithm(), line.Path, verifier)
		verified := res.Digest == line.Digest
		if !res.Cached {
			verified = verifier.Verified()
		}

		cr := CheckResult{Line: lineno, Path: line.Path}
		switch {
		case res.Err != nil:
			summary.Unreadable++
			cr.Err = res.Err
		case !verified:
			summary.Failed++
			cr.Err = ErrMismatch
		default:
			cr.OK = true
		}
		results = append(results, cr)
	}
	return results, summary, scanner.Err()
}
