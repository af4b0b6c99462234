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

package openapi

// BookingDates is the stay range of a booking.
type BookingDates struct {
	Checkin  Date `json:"checkin"`
	Checkout Date `json:"checkout"`
}

// Booking is a reservation record.
type Booking struct {
	FirstName       string       `json:"firstname"`
	LastName        string       `json:"lastname"`
	TotalPrice      int          `json:"totalprice"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds *string      `json:"additionalneeds,omitempty"`
}

// BookingPatch is a partial update, nil fields are left untouched.
type BookingPatch struct {
	FirstName       *string       `json:"firstname,omitempty"`
	LastName        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// BookingID is an element of the booking list.
type BookingID struct {
	BookingID int `json:"bookingid"`
}

// CreatedBooking is returned when a booking is created.
type CreatedBooking struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// Credentials are exchanged for a token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries either a token or, on rejection, a reason.
type TokenResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// BookingFilter narrows a booking list, empty fields are not sent.
type BookingFilter struct {
	FirstName string
	LastName  string
	Checkin   Date
	Checkout  Date
}

// Apply merges a patch into a booking.
func (b Booking) Apply(patch BookingPatch) Booking {
	if patch.FirstName != nil {
		b.FirstName = *patch.FirstName
	}

	if patch.LastName != nil {
		b.LastName = *patch.LastName
	}

	if patch.TotalPrice != nil {
		b.TotalPrice = *patch.TotalPrice
	}

	if patch.DepositPaid != nil {
		b.DepositPaid = *patch.DepositPaid
	}

	if patch.BookingDates != nil {
		b.BookingDates = *patch.BookingDates
	}

	if patch.AdditionalNeeds != nil {
		b.AdditionalNeeds = patch.AdditionalNeeds
	}

	return b
}

// BookingIDParameter is the raw path parameter, it is not guaranteed to be
// an integer.
type BookingIDParameter = string

// GetBookingParams are the optional list filters.
type GetBookingParams struct {
	Firstname *string `form:"firstname,omitempty" json:"firstname,omitempty"`
	Lastname  *string `form:"lastname,omitempty" json:"lastname,omitempty"`
	Checkin   *string `form:"checkin,omitempty" json:"checkin,omitempty"`
	Checkout  *string `form:"checkout,omitempty" json:"checkout,omitempty"`
}

// Filter converts the parameters to a filter.
func (p GetBookingParams) Filter() BookingFilter {
	var filter BookingFilter

	if p.Firstname != nil {
		filter.FirstName = *p.Firstname
	}

	if p.Lastname != nil {
		filter.LastName = *p.Lastname
	}

	if p.Checkin != nil {
		filter.Checkin = Date(*p.Checkin)
	}

	if p.Checkout != nil {
		filter.Checkout = Date(*p.Checkout)
	}

	return filter
}
