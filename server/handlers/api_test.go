package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/distribution/mdhash/api/errcode"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/digest"
	"github.com/stretchr/testify/require"
)

const (
	sha256ABC = "sha256:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	sha1ABC   = "sha1:a9993e364706816aba3e25717850c26c9cd0d89d"
	md5Empty  = "md5:d41d8cd98f00b204e9800998ecf8427e"
)

type testEnv struct {
	config *configuration.Configuration
	app    *App
	server *httptest.Server
}

func newTestEnv(t *testing.T, configure func(*configuration.Configuration)) *testEnv {
	config := configuration.Default()
	if configure != nil {
		configure(config)
	}

	app := NewApp(context.Background(), config)
	server := httptest.NewServer(app)
	t.Cleanup(server.Close)

	return &testEnv{
		config: config,
		app:    app,
		server: server,
	}
}

func (env *testEnv) post(t *testing.T, path, body string) *http.Response {
	resp, err := http.Post(env.server.URL+path, "application/octet-stream", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (env *testEnv) get(t *testing.T, path string) *http.Response {
	resp, err := http.Get(env.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// checkErrorResponse decodes the error envelope and checks its first code.
func checkErrorResponse(t *testing.T, resp *http.Response, status int, code errcode.ErrorCode) errcode.Errors {
	t.Helper()

	require.Equal(t, status, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var errs errcode.Errors
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errs))
	require.NotEmpty(t, errs)

	coder, ok := errs[0].(errcode.ErrorCoder)
	require.True(t, ok, "unexpected error type %T", errs[0])
	require.Equal(t, code, coder.ErrorCode())
	return errs
}

func TestAPIBase(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.get(t, "/v1/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "mdhash/1.0", resp.Header.Get("Mdhash-API-Version"))
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "{}", string(body))
}

func TestPostDigest(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, tc := range []struct {
		path   string
		body   string
		digest digest.Digest
	}{
		{"/v1/digests/sha256", "abc", sha256ABC},
		{"/v1/digests/SHA-1", "abc", sha1ABC},
		{"/v1/digests/md5", "", md5Empty},
	} {
		resp := env.post(t, tc.path, tc.body)
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.path)
		require.Equal(t, tc.digest.String(), resp.Header.Get(DigestHeader))

		var body digestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, tc.digest, body.Digest)
		require.Equal(t, tc.digest.Algorithm().String(), body.Algorithm)
		require.Equal(t, int64(len(tc.body)), body.Size)

		mh, err := tc.digest.B58()
		require.NoError(t, err)
		require.Equal(t, mh, body.Multihash)
	}
}

func TestPostDigestLargeBody(t *testing.T) {
	env := newTestEnv(t, func(config *configuration.Configuration) {
		config.Hash.BufferSize = 7
	})

	content := strings.Repeat("mdhash", 10000)
	resp := env.post(t, "/v1/digests/sha512", content)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body digestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, digest.FromString(body.Digest.Algorithm(), content), body.Digest)
	require.Equal(t, int64(len(content)), body.Size)
}

func TestPostDigestUnsupported(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.post(t, "/v1/digests/blake2b", "abc")
	errs := checkErrorResponse(t, resp, http.StatusNotFound, errcode.ErrorCodeDigestUnsupported)
	require.Equal(t, "blake2b", errs[0].(errcode.Error).Detail)
}

func TestDigestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.get(t, "/v1/digests/sha256")
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestPostDigestBodyTooLarge(t *testing.T) {
	env := newTestEnv(t, func(config *configuration.Configuration) {
		config.HTTP.MaxBodySize = 8
	})

	resp := env.post(t, "/v1/digests/sha256", strings.Repeat("x", 64))
	checkErrorResponse(t, resp, http.StatusRequestEntityTooLarge, errcode.ErrorCodeSizeInvalid)

	// at the limit is fine
	resp = env.post(t, "/v1/digests/sha256", strings.Repeat("x", 8))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostVerify(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.post(t, "/v1/verify/"+sha1ABC, "abc")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body verifyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Verified)
	require.Equal(t, digest.Digest(sha1ABC), body.Digest)
	require.Equal(t, int64(3), body.Size)
}

func TestPostVerifyMismatch(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.post(t, "/v1/verify/"+sha1ABC, "abd")
	errs := checkErrorResponse(t, resp, http.StatusBadRequest, errcode.ErrorCodeDigestInvalid)

	detail, ok := errs[0].(errcode.Error).Detail.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, digest.FromString(digest.Digest(sha1ABC).Algorithm(), "abd").String(), detail["digest"])
}

func TestPostVerifyInvalidDigest(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, tc := range []struct {
		digest string
		status int
		code   errcode.ErrorCode
	}{
		{"sha1:XYZ", http.StatusBadRequest, errcode.ErrorCodeDigestInvalid},
		{"sha256:abcd", http.StatusBadRequest, errcode.ErrorCodeDigestInvalid},
		{"crc32:abcd1234", http.StatusNotFound, errcode.ErrorCodeDigestUnsupported},
	} {
		resp := env.post(t, "/v1/verify/"+tc.digest, "abc")
		checkErrorResponse(t, resp, tc.status, tc.code)
	}
}

func TestGetAlgorithms(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.get(t, "/v1/algorithms")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var algorithms []algorithmDescriptor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&algorithms))
	require.Equal(t, []algorithmDescriptor{
		{Name: "md4", Size: 16, BlockSize: 64, Multicodec: "md4"},
		{Name: "md5", Size: 16, BlockSize: 64, Multicodec: "md5"},
		{Name: "ripemd160", Size: 20, BlockSize: 64, Multicodec: "ripemd-160"},
		{Name: "sha1", Size: 20, BlockSize: 64, Multicodec: "sha1"},
		{Name: "sha224", Size: 28, BlockSize: 64, Multicodec: "sha2-224"},
		{Name: "sha256", Size: 32, BlockSize: 64, Multicodec: "sha2-256"},
		{Name: "sha384", Size: 48, BlockSize: 128, Multicodec: "sha2-384"},
		{Name: "sha512", Size: 64, BlockSize: 128, Multicodec: "sha2-512"},
	}, algorithms)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(config *configuration.Configuration) {
		config.HTTP.RateLimit.Rate = 0.001
		config.HTTP.RateLimit.Burst = 1
	})

	resp := env.get(t, "/v1/algorithms")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, "/v1/algorithms")
	checkErrorResponse(t, resp, http.StatusTooManyRequests, errcode.ErrorCodeTooManyRequests)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, func(config *configuration.Configuration) {
		config.HTTP.Metrics.Enabled = true
	})

	resp := env.post(t, "/v1/digests/sha256", "abc")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get(t, env.config.HTTP.Metrics.Path)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "mdhash_http_requests_per_second")
	require.Contains(t, string(body), "mdhash_http_request_duration_seconds")
	require.Contains(t, string(body), `route="digest"`)
}

func TestMetricsDisabled(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.get(t, "/metrics")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
