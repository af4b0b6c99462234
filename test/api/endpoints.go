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

package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Health and authentication endpoints.
func (e *Endpoints) Ping() string {
	return "/ping"
}

func (e *Endpoints) CreateToken() string {
	return "/auth"
}

// Booking endpoints.
func (e *Endpoints) ListBookings(filter openapi.BookingFilter) string {
	query := url.Values{}

	if filter.FirstName != "" {
		query.Set("firstname", filter.FirstName)
	}

	if filter.LastName != "" {
		query.Set("lastname", filter.LastName)
	}

	if filter.Checkin != "" {
		query.Set("checkin", filter.Checkin.String())
	}

	if filter.Checkout != "" {
		query.Set("checkout", filter.Checkout.String())
	}

	if len(query) == 0 {
		return "/booking"
	}

	return "/booking?" + query.Encode()
}

func (e *Endpoints) CreateBooking() string {
	return "/booking"
}

func (e *Endpoints) GetBooking(bookingID int) string {
	return e.Booking(strconv.Itoa(bookingID))
}

// Booking takes the raw identifier so malformed IDs can be exercised.
func (e *Endpoints) Booking(bookingID string) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(bookingID))
}

func (e *Endpoints) UpdateBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}

func (e *Endpoints) PartialUpdateBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}

func (e *Endpoints) DeleteBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}
