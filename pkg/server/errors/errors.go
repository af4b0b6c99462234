/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package errors

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Error is a failure with the HTTP status it should be reported as.  The
// booking service answers with the bare status text, so the detail is only
// ever logged.
type Error struct {
	status int
	detail string
	err    error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.detail + ": " + e.err.Error()
	}

	return e.detail
}

func (e *Error) Unwrap() error {
	return e.err
}

// WithError attaches a cause.
func (e *Error) WithError(err error) *Error {
	e.err = err
	return e
}

func (e *Error) Status() int {
	return e.status
}

func newError(status int, detail string) *Error {
	return &Error{status: status, detail: detail}
}

func HTTPNotFound(detail string) *Error {
	return newError(http.StatusNotFound, detail)
}

func HTTPForbidden(detail string) *Error {
	return newError(http.StatusForbidden, detail)
}

func HTTPMethodNotAllowed(detail string) *Error {
	return newError(http.StatusMethodNotAllowed, detail)
}

func HTTPBadRequest(detail string) *Error {
	return newError(http.StatusBadRequest, detail)
}

func HTTPRequestEntityTooLarge(detail string) *Error {
	return newError(http.StatusRequestEntityTooLarge, detail)
}

func ServerError(detail string) *Error {
	return newError(http.StatusInternalServerError, detail)
}

// HandleError writes the status text for the error, anything not raised
// via this package is an internal server error.
func HandleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError

	var herr *Error
	if errors.As(err, &herr) {
		status = herr.status
	}

	logger.Info("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	WriteText(w, status)
}

// WriteText writes the canonical status text as a plain text body.
func WriteText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(http.StatusText(status)))
}
