package checks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileChecker(t *testing.T) {
	ctx := context.Background()
	down := filepath.Join(t.TempDir(), "down")

	require.NoError(t, FileChecker(down).Check(ctx))

	require.NoError(t, os.WriteFile(down, nil, 0o644))
	require.EqualError(t, FileChecker(down).Check(ctx), "file exists")
}

func TestHTTPChecker(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	require.NoError(t, HTTPChecker(srv.URL+"/", http.StatusOK).Check(ctx))
	require.Error(t, HTTPChecker(srv.URL+"/broken", http.StatusOK).Check(ctx))
	require.NoError(t, HTTPChecker(srv.URL+"/broken", http.StatusInternalServerError).Check(ctx))
}
