package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/distribution/mdhash/api/errcode"
)

// serveJSON marshals v and sets the content-type header to
// 'application/json'. If a different status code is required, call
// ResponseWriter.WriteHeader before this function.
func serveJSON(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(v)
}

// bodyError classifies an error raised while reading a request body.
func bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errcode.ErrorCodeSizeInvalid.WithDetail(map[string]int64{"limit": maxBytesErr.Limit})
	}
	return errcode.ErrorCodeUnknown.WithDetail(err.Error())
}
