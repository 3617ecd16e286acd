package handlers

import (
	"errors"
	"net/http"

	"github.com/distribution/mdhash/api/errcode"
	"github.com/distribution/mdhash/checksum"
	"github.com/distribution/mdhash/digest"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// verifyResponse is the body returned when content matches its digest.
type verifyResponse struct {
	Digest   digest.Digest `json:"digest"`
	Size     int64         `json:"size"`
	Verified bool          `json:"verified"`
}

// verifyDispatcher parses the digest from the path and builds the handler
// checking request bodies against it.
func verifyDispatcher(ctx *Context, r *http.Request) http.Handler {
	dgst, err := digest.Parse(mux.Vars(r)["digest"])
	if err != nil {
		code := errcode.ErrorCodeDigestInvalid
		if errors.Is(err, digest.ErrDigestUnsupported) {
			code = errcode.ErrorCodeDigestUnsupported
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx.Errors = append(ctx.Errors, code.WithDetail(err.Error()))
		})
	}

	verifyHandler := &verifyHandler{
		Context: ctx,
		Digest:  dgst,
	}

	return handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(verifyHandler.PostVerify),
	}
}

// verifyHandler checks request bodies against an expected digest.
type verifyHandler struct {
	*Context

	Digest digest.Digest
}

// PostVerify hashes the request body with the algorithm of the expected
// digest. A mismatch is reported as DIGEST_INVALID carrying the digest of
// the content received.
func (vh *verifyHandler) PostVerify(w http.ResponseWriter, r *http.Request) {
	dcontext.GetLogger(vh).Debug("PostVerify")

	hasher := checksum.Hasher{BufferSize: vh.Config.Hash.BufferSize}
	body := http.MaxBytesReader(w, r.Body, vh.Config.HTTP.MaxBodySize)
	dgst, size, err := hasher.Verify(vh, vh.Digest, body)
	switch {
	case errors.Is(err, checksum.ErrMismatch):
		dcontext.GetLogger(vh).Infof("content does not match %s, received %s", vh.Digest, dgst)
		vh.Errors = append(vh.Errors, errcode.ErrorCodeDigestInvalid.WithDetail(map[string]digest.Digest{"digest": dgst}))
		return
	case err != nil:
		dcontext.GetLogger(vh).Errorf("error hashing request body: %v", err)
		vh.Errors = append(vh.Errors, bodyError(err))
		return
	}

	if err := serveJSON(w, verifyResponse{Digest: dgst, Size: size, Verified: true}); err != nil {
		dcontext.GetLogger(vh).Errorf("error writing verify response: %v", err)
	}
}
