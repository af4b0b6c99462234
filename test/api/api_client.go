/*
Copyright 2024-2025 the Unikorn Authors.
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

//go:generate go tool mockgen -source=api_client.go -destination=mock/doer.go -package=mock HTTPDoer

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

var (
	// ErrBadCredentials is returned when /auth refuses the credentials.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrEmptyToken is returned when /auth answers with neither token nor reason.
	ErrEmptyToken = errors.New("auth response carried no token")
)

// HTTPDoer is the transport requests are issued over.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the service answers with a status code
// other than the one the operation expects.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Expected, e.Actual, e.Body, e.TraceID)
}

// StatusCode returns the status code carried by a StatusError anywhere in
// the chain, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Actual
	}

	return 0
}

type APIClient struct {
	baseURL     string
	client      HTTPDoer
	authToken   string
	credentials *openapi.Credentials
	config      *TestConfig
	endpoints   *Endpoints
	validator   *ResponseValidator
}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	return NewAPIClientWithTransport(config, &http.Client{
		Timeout: config.RequestTimeout,
	})
}

// NewAPIClientWithTransport allows the transport to be replaced, typically
// with a mock.
func NewAPIClientWithTransport(config *TestConfig, doer HTTPDoer) (*APIClient, error) {
	c := &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    doer,
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		validator, err := NewResponseValidator()
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	return c, nil
}

// WithAuthToken returns a copy of the client that presents the token as a
// cookie on every request.
func (c *APIClient) WithAuthToken(token string) *APIClient {
	clone := *c
	clone.authToken = token

	return &clone
}

// WithBasicAuth returns a copy of the client that authenticates with basic
// authentication on every request.
func (c *APIClient) WithBasicAuth(credentials openapi.Credentials) *APIClient {
	clone := *c
	clone.credentials = &credentials

	return &clone
}

// WithoutValidation returns a copy of the client that skips contract
// validation, for checks that only care whether fields are present.
func (c *APIClient) WithoutValidation() *APIClient {
	clone := *c
	clone.validator = nil

	return &clone
}

// Anonymous returns a copy of the client with no authentication.
func (c *APIClient) Anonymous() *APIClient {
	clone := *c
	clone.authToken = ""
	clone.credentials = nil

	return &clone
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", method, path, expectedStatus, actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest issues a request and returns the response with its body read.
// An expected status of 0 accepts any status.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: c.authToken})
	}

	if c.credentials != nil {
		req.SetBasicAuth(c.credentials.Username, c.credentials.Password)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)

		return resp, respBody, &StatusError{
			Method:   method,
			Path:     path,
			Expected: expectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  extractTraceID(traceParent),
		}
	}

	if c.validator != nil {
		if err := c.validator.Validate(ctx, method, path, resp, respBody); err != nil {
			c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "response violates contract")
			return resp, respBody, err
		}
	}

	return resp, respBody, nil
}

// doJSON marshals the request body, if any, and unmarshals the response
// body into out, if given.
func (c *APIClient) doJSON(ctx context.Context, method, path string, in any, expectedStatus int, out any) error {
	var body io.Reader

	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, method, path, body, expectedStatus)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", method, path, err)
	}

	return nil
}

// Ping checks the service is alive, it answers 201.
func (c *APIClient) Ping(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodGet, c.endpoints.Ping(), nil, http.StatusCreated, nil); err != nil {
		return fmt.Errorf("pinging service: %w", err)
	}

	return nil
}

// CreateToken exchanges credentials for a token.  The service refuses bad
// credentials with a 200 and a reason, that is mapped to ErrBadCredentials.
func (c *APIClient) CreateToken(ctx context.Context, credentials openapi.Credentials) (string, error) {
	var result openapi.TokenResponse

	if err := c.doJSON(ctx, http.MethodPost, c.endpoints.CreateToken(), credentials, http.StatusOK, &result); err != nil {
		return "", fmt.Errorf("creating token: %w", err)
	}

	if result.Reason != "" {
		return "", fmt.Errorf("creating token: %w: %s", ErrBadCredentials, result.Reason)
	}

	if result.Token == "" {
		return "", fmt.Errorf("creating token: %w", ErrEmptyToken)
	}

	return result.Token, nil
}

// ListBookings lists booking IDs matching the filter, the zero filter lists
// everything.
func (c *APIClient) ListBookings(ctx context.Context, filter openapi.BookingFilter) ([]openapi.BookingID, error) {
	var result []openapi.BookingID

	if err := c.doJSON(ctx, http.MethodGet, c.endpoints.ListBookings(filter), nil, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	return result, nil
}

// GetBooking retrieves a specific booking.
func (c *APIClient) GetBooking(ctx context.Context, bookingID int) (*openapi.Booking, error) {
	return c.GetBookingByReference(ctx, strconv.Itoa(bookingID))
}

// GetBookingByReference retrieves a booking by a raw path reference, which
// need not be an integer.
func (c *APIClient) GetBookingByReference(ctx context.Context, reference string) (*openapi.Booking, error) {
	var result openapi.Booking

	if err := c.doJSON(ctx, http.MethodGet, c.endpoints.Booking(reference), nil, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("getting booking '%s': %w", reference, err)
	}

	return &result, nil
}

// GetBookingDocument retrieves a booking as an untyped document, so field
// presence rather than value can be checked.
func (c *APIClient) GetBookingDocument(ctx context.Context, bookingID int) (map[string]interface{}, error) {
	var result map[string]interface{}

	if err := c.doJSON(ctx, http.MethodGet, c.endpoints.GetBooking(bookingID), nil, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("getting booking %d: %w", bookingID, err)
	}

	return result, nil
}

// CreateBooking creates a new booking.
func (c *APIClient) CreateBooking(ctx context.Context, booking openapi.Booking) (*openapi.CreatedBooking, error) {
	var result openapi.CreatedBooking

	if err := c.doJSON(ctx, http.MethodPost, c.endpoints.CreateBooking(), booking, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return &result, nil
}

// CreateBookingDocument creates a booking from an untyped document, so
// malformed payloads can be submitted.
func (c *APIClient) CreateBookingDocument(ctx context.Context, document map[string]interface{}) (*openapi.CreatedBooking, error) {
	var result openapi.CreatedBooking

	if err := c.doJSON(ctx, http.MethodPost, c.endpoints.CreateBooking(), document, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return &result, nil
}

// UpdateBooking replaces a booking, authentication is required.
func (c *APIClient) UpdateBooking(ctx context.Context, bookingID int, booking openapi.Booking) (*openapi.Booking, error) {
	var result openapi.Booking

	if err := c.doJSON(ctx, http.MethodPut, c.endpoints.UpdateBooking(bookingID), booking, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("updating booking %d: %w", bookingID, err)
	}

	return &result, nil
}

// PartialUpdateBooking updates the set fields of a booking, authentication
// is required.
func (c *APIClient) PartialUpdateBooking(ctx context.Context, bookingID int, patch openapi.BookingPatch) (*openapi.Booking, error) {
	var result openapi.Booking

	if err := c.doJSON(ctx, http.MethodPatch, c.endpoints.PartialUpdateBooking(bookingID), patch, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("patching booking %d: %w", bookingID, err)
	}

	return &result, nil
}

// DeleteBooking deletes a booking, authentication is required.  Note the
// service answers 201 on success.
func (c *APIClient) DeleteBooking(ctx context.Context, bookingID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.endpoints.DeleteBooking(bookingID), nil, http.StatusCreated, nil); err != nil {
		return fmt.Errorf("deleting booking %d: %w", bookingID, err)
	}

	return nil
}
