package handlers

import (
	"net/http"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/api/errcode"
	"github.com/distribution/mdhash/checksum"
	"github.com/distribution/mdhash/digest"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// DigestHeader carries the digest of the request body on responses.
const DigestHeader = "Mdhash-Digest"

// digestResponse is the body returned for a hashed request.
type digestResponse struct {
	Digest    digest.Digest `json:"digest"`
	Algorithm string        `json:"algorithm"`
	Size      int64         `json:"size"`
	Multihash string        `json:"multihash,omitempty"`
}

// digestDispatcher takes the request context and builds the appropriate
// handler for hashing request bodies.
func digestDispatcher(ctx *Context, r *http.Request) http.Handler {
	name := mux.Vars(r)["algorithm"]
	alg, err := mdhash.ParseAlgorithm(name)
	if err != nil || !alg.Available() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx.Errors = append(ctx.Errors, errcode.ErrorCodeDigestUnsupported.WithDetail(name))
		})
	}

	digestHandler := &digestHandler{
		Context:   ctx,
		Algorithm: alg,
	}

	return handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(digestHandler.PostDigest),
	}
}

// digestHandler hashes request bodies with one algorithm.
type digestHandler struct {
	*Context

	Algorithm mdhash.Algorithm
}

// PostDigest hashes the request body and returns its digest.
func (dh *digestHandler) PostDigest(w http.ResponseWriter, r *http.Request) {
	dcontext.GetLogger(dh).Debug("PostDigest")

	hasher := checksum.Hasher{
		Algorithm:  dh.Algorithm,
		BufferSize: dh.Config.Hash.BufferSize,
	}
	body := http.MaxBytesReader(w, r.Body, dh.Config.HTTP.MaxBodySize)
	dgst, size, err := hasher.SumReader(dh, body)
	if err != nil {
		dcontext.GetLogger(dh).Errorf("error hashing request body: %v", err)
		dh.Errors = append(dh.Errors, bodyError(err))
		return
	}

	resp := digestResponse{
		Digest:    dgst,
		Algorithm: dh.Algorithm.String(),
		Size:      size,
	}
	if mh, err := dgst.B58(); err == nil {
		resp.Multihash = mh
	} else {
		dcontext.GetLogger(dh).Warnf("no multihash for %s: %v", dgst, err)
	}

	w.Header().Set(DigestHeader, dgst.String())
	if err := serveJSON(w, resp); err != nil {
		dcontext.GetLogger(dh).Errorf("error writing digest response: %v", err)
	}
}
