package handlers

import (
	"net/http"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/digest"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/gorilla/handlers"
)

type algorithmDescriptor struct {
	Name       string `json:"name"`
	Size       int    `json:"size"`
	BlockSize  int    `json:"blockSize"`
	Multicodec string `json:"multicodec,omitempty"`
}

func algorithmsDispatcher(ctx *Context, r *http.Request) http.Handler {
	return handlers.MethodHandler{
		http.MethodGet: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			getAlgorithms(ctx, w)
		}),
	}
}

// getAlgorithms lists the available algorithms in registration order.
func getAlgorithms(ctx *Context, w http.ResponseWriter) {
	var descriptors []algorithmDescriptor
	for _, alg := range mdhash.Algorithms() {
		descriptor := algorithmDescriptor{
			Name:      alg.String(),
			Size:      alg.Size(),
			BlockSize: alg.BlockSize(),
		}
		if code, err := digest.Multicodec(alg); err == nil {
			descriptor.Multicodec = code.String()
		}
		descriptors = append(descriptors, descriptor)
	}

	if err := serveJSON(w, descriptors); err != nil {
		dcontext.GetLogger(ctx).Errorf("error writing algorithms: %v", err)
	}
}
