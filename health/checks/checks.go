// Package checks provides the checkers that can be enabled from the
// health section of the configuration.
package checks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/distribution/mdhash/health"
)

// FileChecker fails while the file f exists. Operators create it to take
// a server out of rotation before maintenance.
func FileChecker(f string) health.Checker {
	return health.CheckFunc(func(context.Context) error {
		if _, err := os.Stat(f); err == nil {
			return errors.New("file exists")
		}
		return nil
	})
}

// HTTPChecker issues a HEAD request to r and fails unless the response
// status is statusCode.
func HTTPChecker(r string, statusCode int) health.Checker {
	return health.CheckFunc(func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, r, nil)
		if err != nil {
			return fmt.Errorf("%v: error creating request: %w", r, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("%v: error while checking: %w", r, err)
		}
		resp.Body.Close()
		if resp.StatusCode != statusCode {
			return fmt.Errorf("%v: downstream service returned unexpected status: %d", r, resp.StatusCode)
		}
		return nil
	})
}
