// Package checksum hashes files and streams, formats the results as
// checksum lists and verifies such lists.
package checksum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/digest"
	"github.com/distribution/mdhash/internal/dcontext"
	prometheus "github.com/distribution/mdhash/metrics"
	"github.com/docker/go-metrics"
)

const (
	// DefaultBufferSize is the read size used when Hasher.BufferSize is
	// not set.
	DefaultBufferSize = 32 << 10

	// DefaultWorkers is the number of files hashed concurrently when
	// Hasher.Workers is not set.
	DefaultWorkers = 4
)

var (
	// ErrIsDirectory is returned when a directory is named as input.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotRegular is returned for devices, sockets and pipes unless
	// Hasher.Force is set.
	ErrNotRegular = errors.New("not a regular file (use -f to override)")
)

var (
	bytesHashed = prometheus.ChecksumNamespace.NewLabeledCounter("bytes", "The number of bytes hashed", "algorithm")
	filesHashed = prometheus.ChecksumNamespace.NewLabeledCounter("files", "The number of files digested", "algorithm", "source")
	hashTimer   = prometheus.ChecksumNamespace.NewLabeledTimer("hash", "The time taken to hash one input", "algorithm")
)

func init() {
	metrics.Register(prometheus.ChecksumNamespace)
}

// Hasher computes digests of streams and files.
type Hasher struct {
	Algorithm mdhash.Algorithm

	// BufferSize is the size of each read from the input.
	BufferSize int

	// Workers bounds the number of files SumFiles hashes at once.
	Workers int

	// Cache, if set, is consulted before hashing a file and updated after.
	Cache cache.Provider

	// Force allows hashing files that are not regular, like devices.
	Force bool
}

// Result is the outcome of hashing one file.
type Result struct {
	Path   string
	Digest digest.Digest
	Size   int64
	Cached bool
	Err    error
}

func (h *Hasher) bufferSize() int {
	if h.BufferSize > 0 {
		return h.BufferSize
	}
	return DefaultBufferSize
}

func (h *Hasher) workers() int {
	if h.Workers > 0 {
		return h.Workers
	}
	return DefaultWorkers
}

// contentWriter receives the content of an input and reports its digest.
// Digesters and Verifiers both serve.
type contentWriter interface {
	io.Writer
	Digest() digest.Digest
}

type digesterWriter struct {
	digest.Digester
}

func (d digesterWriter) Write(p []byte) (int, error) {
	return d.Hash().Write(p)
}

func unsupported(alg mdhash.Algorithm) error {
	return fmt.Errorf("%w: %v", digest.ErrDigestUnsupported, alg)
}

// SumReader hashes r until io.EOF and returns the digest and the number of
// bytes read. The context is checked between reads.
func (h *Hasher) SumReader(ctx context.Context, r io.Reader) (digest.Digest, int64, error) {
	if !h.Algorithm.Available() {
		return "", 0, unsupported(h.Algorithm)
	}

	w := digesterWriter{digest.NewDigester(h.Algorithm)}
	n, err := h.read(ctx, h.Algorithm, w, r)
	if err != nil {
		return "", n, err
	}
	return w.Digest(), n, nil
}

// Verify hashes r with the algorithm of expected and compares the result.
// On a mismatch the digest of the content read is returned along with
// ErrMismatch.
func (h *Hasher) Verify(ctx context.Context, expected digest.Digest, r io.Reader) (digest.Digest, int64, error) {
	if err := expected.Validate(); err != nil {
		return "", 0, err
	}

	verifier := expected.Verifier()
	n, err := h.read(ctx, expected.Algorithm(), verifier, r)
	if err != nil {
		return "", n, err
	}
	if !verifier.Verified() {
		return verifier.Digest(), n, ErrMismatch
	}
	return expected, n, nil
}

// read copies r into w in BufferSize chunks, checking ctx between reads.
func (h *Hasher) read(ctx context.Context, alg mdhash.Algorithm, w io.Writer, r io.Reader) (int64, error) {
	defer hashTimer.WithValues(alg.String()).UpdateSince(time.Now())

	buf := make([]byte, h.bufferSize())
	var n int64
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		m, err := r.Read(buf)
		if m > 0 {
			w.Write(buf[:m])
			n += int64(m)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
	}

	bytesHashed.WithValues(alg.String()).Inc(float64(n))
	return n, nil
}

// SumFile hashes the file at path, using the cache when one is configured.
// Errors are wrapped with the path.
func (h *Hasher) SumFile(ctx context.Context, path string) Result {
	if !h.Algorithm.Available() {
		return Result{Path: path, Err: fmt.Errorf("%s: %w", path, unsupported(h.Algorithm))}
	}
	return h.sumFile(ctx, h.Algorithm, path, digesterWriter{digest.NewDigester(h.Algorithm)})
}

// sumFile feeds the file at path to w unless the cache already knows its
// digest.
func (h *Hasher) sumFile(ctx context.Context, alg mdhash.Algorithm, path string, w contentWriter) Result {
	res := Result{Path: path}
	fail := func(err error) Result {
		// os errors already name the file
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	fi, err := os.Stat(path)
	if err != nil {
		return fail(err)
	}
	switch {
	case fi.IsDir():
		return fail(ErrIsDirectory)
	case !fi.Mode().IsRegular() && !h.Force:
		return fail(ErrNotRegular)
	}

	var key cache.Key
	useCache := h.Cache != nil && fi.Mode().IsRegular()
	if useCache {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fail(err)
		}
		key = cache.Key{Path: abs, Size: fi.Size(), ModTime: fi.ModTime(), Algorithm: alg}

		dgst, err := h.Cache.Get(ctx, key)
		switch {
		case err == nil:
			filesHashed.WithValues(alg.String(), "cache").Inc(1)
			res.Digest, res.Size, res.Cached = dgst, fi.Size(), true
			return res
		case !errors.Is(err, cache.ErrUnknown):
			dcontext.GetLoggerWithField(ctx, "path", path).Warnf("digest cache lookup failed: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	res.Size, err = h.read(ctx, alg, w, f)
	if err != nil {
		return fail(err)
	}
	res.Digest = w.Digest()
	filesHashed.WithValues(alg.String(), "read").Inc(1)

	if useCache && res.Size == fi.Size() {
		if err := h.Cache.Set(ctx, key, res.Digest); err != nil {
			dcontext.GetLoggerWithField(ctx, "path", path).Warnf("digest cache update failed: %v", err)
		}
	}
	return res
}

// SumFiles hashes paths with at most Workers files in flight. Results are
// delivered in the order of paths and the channel is closed after the last
// one. Cancelling ctx makes the remaining results carry ctx.Err().
func (h *Hasher) SumFiles(ctx context.Context, paths []string) <-chan Result {
	out := make(chan Result)
	type result struct {
		index int
		Result
	}
	jobs := make(chan int)
	done := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < h.workers() && i < len(paths); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				done <- result{index: idx, Result: h.SumFile(ctx, paths[idx])}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	go func() {
		defer close(out)

		// aggregate the results, releasing them in order
		pending := make(map[int]Result)
		next := 0
		for r := range done {
			pending[r.index] = r.Result
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				out <- res
				next++
			}
		}
		for ; next < len(paths); next++ {
			out <- Result{Path: paths[next], Err: fmt.Errorf("%s: %w", paths[next], ctx.Err())}
		}
	}()

	return out
}
