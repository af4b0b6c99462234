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

package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize bounds request bodies, bookings are tiny.
const maxBodySize = 1 << 20

// ErrBodyTooLarge is returned when a request body exceeds maxBodySize.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSONResponse marshals the body and writes it with the given status.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling %s %s response: %w", r.Method, r.URL.Path, err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s %s response: %w", r.Method, r.URL.Path, err)
	}

	return nil
}

// ReadBody returns the raw request body.  Bodies over the limit are never
// truncated, they fail with ErrBodyTooLarge.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
		}

		return nil, fmt.Errorf("reading request body: %w", err)
	}

	return data, nil
}
