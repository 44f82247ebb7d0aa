package api

import (
	"errors"
	"net/http"
	"strings"
)

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func newErrorResponse(err error) *errorResponse {
	res := &errorResponse{Error: err.Error()}

	mpErr := &missingParamsError{}
	if errors.As(err, &mpErr) {
		res.Missing = mpErr.params
	}

	return res
}

// missingParamsError names the query parameters
// that /genPlist requires but did not receive.
type missingParamsError struct {
	params []string
}

func (e *missingParamsError) Error() string {
	return "missing required query parameter(s): " + strings.Join(e.params, ", ")
}

// requestError carries the status a failed request is answered with.
type requestError struct {
	err  error
	code int
}

func newRequestError(err error, code int) error {
	if err == nil {
		return nil
	}

	if code < 100 || code >= 600 {
		code = http.StatusInternalServerError
	}

	return &requestError{err: err, code: code}
}

func (e *requestError) Error() string {
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func statusCode(err error) int {
	reqErr := &requestError{}
	if errors.As(err, &reqErr) {
		return reqErr.code
	}

	mpErr := &missingParamsError{}
	if errors.As(err, &mpErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
