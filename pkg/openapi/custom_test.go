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

package openapi_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/booker/pkg/openapi"

	"k8s.io/utils/ptr"
)

func TestDateValidation(t *testing.T) {
	t.Parallel()

	require.NoError(t, openapi.Date("2025-01-01").Validate())
	require.ErrorIs(t, openapi.Date("2025-1-1").Validate(), openapi.ErrInvalidDate)
	require.ErrorIs(t, openapi.Date("2025-02-30").Validate(), openapi.ErrInvalidDate)
	require.ErrorIs(t, openapi.Date("0NaN-aN-aN").Validate(), openapi.ErrInvalidDate)

	d, err := openapi.Date("2025-01-07").Time()
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC), d)

	require.Equal(t, openapi.Date("2024-02-29"), openapi.NewDate(time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)))
}

// TestBookingWireFormat ensures field names match the service and the
// optional field is omitted when unset.
func TestBookingWireFormat(t *testing.T) {
	t.Parallel()

	booking := openapi.Booking{
		FirstName:   "Kavya",
		LastName:    "Test",
		TotalPrice:  150,
		DepositPaid: true,
		BookingDates: openapi.BookingDates{
			Checkin:  "2025-01-01",
			Checkout: "2025-01-07",
		},
	}

	data, err := json.Marshal(booking)
	require.NoError(t, err)
	require.JSONEq(t, `{"firstname":"Kavya","lastname":"Test","totalprice":150,"depositpaid":true,"bookingdates":{"checkin":"2025-01-01","checkout":"2025-01-07"}}`, string(data))
}

func TestBookingApply(t *testing.T) {
	t.Parallel()

	booking := openapi.Booking{
		FirstName:       "Kavya",
		LastName:        "Test",
		TotalPrice:      150,
		AdditionalNeeds: ptr.To("Breakfast"),
	}

	patched := booking.Apply(openapi.BookingPatch{
		FirstName:   ptr.To("Meera"),
		DepositPaid: ptr.To(true),
	})

	require.Equal(t, "Meera", patched.FirstName)
	require.Equal(t, "Test", patched.LastName)
	require.Equal(t, 150, patched.TotalPrice)
	require.True(t, patched.DepositPaid)
	require.Equal(t, ptr.To("Breakfast"), patched.AdditionalNeeds)

	// Apply returns a copy, the booking itself is untouched.
	require.Equal(t, "Kavya", booking.FirstName)

	require.Equal(t, booking, booking.Apply(openapi.BookingPatch{}))
}

func TestGetBookingParamsFilter(t *testing.T) {
	t.Parallel()

	require.Equal(t, openapi.BookingFilter{}, openapi.GetBookingParams{}.Filter())

	filter := openapi.GetBookingParams{
		Firstname: ptr.To("Kavya"),
		Checkin:   ptr.To("2025-01-01"),
	}.Filter()

	require.Equal(t, openapi.BookingFilter{FirstName: "Kavya", Checkin: "2025-01-01"}, filter)
}

func TestGetSwagger(t *testing.T) {
	t.Parallel()

	doc, err := openapi.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{"/ping", "/auth", "/booking", "/booking/{bookingID}"} {
		require.NotNil(t, doc.Paths.Find(path), path)
	}

	item := doc.Paths.Find("/booking/{bookingID}")
	require.NotNil(t, item.Delete.Responses.Status(201))
	require.NotNil(t, item.Delete.Responses.Status(403))
}
