package v1

import (
	"strings"

	"github.com/gorilla/mux"
)

// The following are definitions of the name under which all V1 routes are
// registered. These symbols can be used to look up a route based on the name.
const (
	RouteNameBase       = "base"
	RouteNameDigest     = "digest"
	RouteNameVerify     = "verify"
	RouteNameAlgorithms = "algorithms"
)

const (
	// algorithmPattern matches canonical names and the dashed spellings,
	// such as sha256 or RIPEMD-160.
	algorithmPattern = `[A-Za-z0-9][A-Za-z0-9-]*`

	// digestPattern matches "<algorithm>:<encoded>". Validation of the
	// encoded part is left to the handler so malformed digests get a
	// DIGEST_INVALID error instead of a 404.
	digestPattern = algorithmPattern + `:[A-Za-z0-9]+`
)

// Router builds a gorilla router with named routes for the various API
// methods. This can be used directly by both server implementations and
// clients.
func Router() *mux.Router {
	return RouterWithPrefix("")
}

// RouterWithPrefix builds a gorilla router with a configured prefix
// on all routes.
func RouterWithPrefix(prefix string) *mux.Router {
	rootRouter := mux.NewRouter()
	router := rootRouter
	if prefix = strings.TrimSuffix(prefix, "/"); prefix != "" {
		router = router.PathPrefix(prefix).Subrouter()
	}

	router.StrictSlash(true)

	router.Path("/v1/").Name(RouteNameBase)
	router.Path("/v1/digests/{algorithm:" + algorithmPattern + "}").Name(RouteNameDigest)
	router.Path("/v1/verify/{digest:" + digestPattern + "}").Name(RouteNameVerify)
	router.Path("/v1/algorithms").Name(RouteNameAlgorithms)

	return rootRouter
}
