package errcode

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ServeJSON writes err as an error envelope with the status code of its
// first ErrorCoder. Errors wrapping an ErrorCoder are reported as that
// code; anything else is sent as UNKNOWN with status 500.
func ServeJSON(w http.ResponseWriter, err error) error {
	errs, ok := err.(Errors)
	if !ok {
		var coder ErrorCoder
		if errors.As(err, &coder) {
			if e, ok := coder.(error); ok {
				err = e
			}
		}
		errs = Errors{err}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode(errs))
	return json.NewEncoder(w).Encode(errs)
}

func statusCode(errs Errors) int {
	if len(errs) > 0 {
		var coder ErrorCoder
		if errors.As(errs[0], &coder) {
			if sc := coder.ErrorCode().Descriptor().HTTPStatusCode; sc != 0 {
				return sc
			}
		}
	}
	return http.StatusInternalServerError
}
