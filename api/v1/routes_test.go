package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type routeTestCase struct {
	RequestURI string
	Vars       map[string]string
	RouteName  string
	StatusCode int
}

// TestRouter registers a test handler with all the routes and ensures that
// each route returns the expected path variables. No method verification is
// present.
func TestRouter(t *testing.T) {
	tests := []routeTestCase{
		{
			RouteName:  RouteNameBase,
			RequestURI: "/v1/",
			Vars:       map[string]string{},
		},
		{
			RouteName:  RouteNameDigest,
			RequestURI: "/v1/digests/sha256",
			Vars:       map[string]string{"algorithm": "sha256"},
		},
		{
			RouteName:  RouteNameDigest,
			RequestURI: "/v1/digests/RIPEMD-160",
			Vars:       map[string]string{"algorithm": "RIPEMD-160"},
		},
		{
			RouteName:  RouteNameVerify,
			RequestURI: "/v1/verify/md5:d41d8cd98f00b204e9800998ecf8427e",
			Vars:       map[string]string{"digest": "md5:d41d8cd98f00b204e9800998ecf8427e"},
		},
		{
			// malformed encodings still reach the handler
			RouteName:  RouteNameVerify,
			RequestURI: "/v1/verify/sha1:XYZ",
			Vars:       map[string]string{"digest": "sha1:XYZ"},
		},
		{
			RouteName:  RouteNameAlgorithms,
			RequestURI: "/v1/algorithms",
			Vars:       map[string]string{},
		},
		{
			// does not match
			RequestURI: "/v1/verify/sha256",
			StatusCode: http.StatusNotFound,
		},
		{
			RequestURI: "/v1/digests/sha256/extra",
			StatusCode: http.StatusNotFound,
		},
		{
			RequestURI: "/v2/",
			StatusCode: http.StatusNotFound,
		},
	}

	checkTestRouter(t, tests, "")
	checkTestRouter(t, tests, "/prefix/")
}

func checkTestRouter(t *testing.T, tests []routeTestCase, prefix string) {
	router := RouterWithPrefix(prefix)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testCase := routeTestCase{
			RequestURI: r.RequestURI,
			Vars:       mux.Vars(r),
			RouteName:  mux.CurrentRoute(r).GetName(),
		}

		if err := json.NewEncoder(w).Encode(testCase); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	for _, name := range []string{RouteNameBase, RouteNameDigest, RouteNameVerify, RouteNameAlgorithms} {
		route := router.GetRoute(name)
		require.NotNil(t, route, "route for name %q not found", name)
		route.Handler(testHandler)
	}

	server := httptest.NewServer(router)
	defer server.Close()

	base := server.URL
	if prefix != "" {
		base += "/prefix"
	}

	for _, tc := range tests {
		t.Run("("+tc.RouteName+")"+prefix+tc.RequestURI, func(t *testing.T) {
			resp, err := http.Get(base + tc.RequestURI)
			require.NoError(t, err)
			defer resp.Body.Close()

			if tc.StatusCode == 0 {
				tc.StatusCode = http.StatusOK
			}
			require.Equal(t, tc.StatusCode, resp.StatusCode)
			if tc.StatusCode != http.StatusOK {
				return
			}

			var actual routeTestCase
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&actual))
			require.Equal(t, tc.RouteName, actual.RouteName)
			require.Equal(t, tc.Vars, actual.Vars)
		})
	}
}
