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

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

// ValidationError is returned when a response does not honour the
// service's documented contract, e.g. a required field is missing.
type ValidationError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s %s] status %d response violates contract: %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResponseValidator checks responses against the OpenAPI document.
type ResponseValidator struct {
	router routers.Router
}

func NewResponseValidator() (*ResponseValidator, error) {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	// Routes are matched on the path alone, wherever the service is hosted.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	return &ResponseValidator{
		router: router,
	}, nil
}

// Validate checks a response to a request for method and path.  The path is
// relative to the service root, so the validator is independent of where
// the service is hosted.
func (v *ResponseValidator) Validate(ctx context.Context, method, path string, resp *http.Response, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, path, nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return &ValidationError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	options := &openapi3filter.Options{
		IncludeResponseStatus: true,
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		},
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Options: options,
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return &ValidationError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	return nil
}
