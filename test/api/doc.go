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

// Package api provides black-box test utilities for the booking service.
//
// # Client
//
// APIClient is a small hand written HTTP client.  Every operation declares
// the status code the service documents for it, anything else is returned
// as a *StatusError carrying the body and a trace ID.  Some of those codes
// are unusual, deletion and the ping endpoint answer 201, and are asserted
// literally.
//
// Responses are additionally checked against the OpenAPI document embedded
// in pkg/openapi, so a missing or mistyped field surfaces as a
// *ValidationError rather than a zero value.
//
// # Targets
//
// By default the suites run against the public service.  Setting
// BOOKER_USE_FAKE starts the in-memory implementation from pkg/server on a
// loopback listener instead, which makes the suites hermetic.
//
// # Isolation
//
// The public service is shared, so specs never assume an exact number of
// bookings and clean up what they create.  Payloads are fixed by default,
// use BookingPayloadBuilder.WithUniqueSuffix where content must identify a
// booking.
package api
