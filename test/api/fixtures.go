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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

// RequiredBookingFields must be present in every booking the service returns.
//
//nolint:gochecknoglobals
var RequiredBookingFields = []string{"firstname", "lastname", "totalprice", "depositpaid", "bookingdates"}

// AcquireAuthToken authenticates once with the configured credentials.  It is
// meant to be called from BeforeSuite, the token is never refreshed.
func AcquireAuthToken(client *APIClient, ctx context.Context, config *TestConfig) string {
	token, err := client.CreateToken(ctx, openapi.Credentials{
		Username: config.Username,
		Password: config.Password,
	})

	Expect(err).NotTo(HaveOccurred(), "Expected the configured credentials to be accepted")
	Expect(token).NotTo(BeEmpty())

	GinkgoWriter.Printf("Acquired auth token for user %s\n", config.Username)

	return token
}

// CreateBookingWithCleanup creates a booking and schedules its deletion with
// the authorized client.  Specs may delete the booking themselves, cleanup
// then tolerates it being gone.
func CreateBookingWithCleanup(client, authorized *APIClient, ctx context.Context, payload openapi.Booking) *openapi.CreatedBooking {
	created, err := client.CreateBooking(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(created.BookingID).To(BeNumerically(">", 0))

	bookingID := created.BookingID

	GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func(ctx context.Context) {
		GinkgoWriter.Printf("Cleaning up booking: %d\n", bookingID)

		deleteErr := authorized.DeleteBooking(ctx, bookingID)

		switch {
		case deleteErr == nil:
			GinkgoWriter.Printf("Successfully deleted booking: %d\n", bookingID)
		case slices.Contains([]int{http.StatusNotFound, http.StatusMethodNotAllowed}, StatusCode(deleteErr)):
			GinkgoWriter.Printf("Booking %d already deleted\n", bookingID)
		default:
			GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, deleteErr)
		}
	})

	return created
}

// BookingIDs extracts the identifiers from a list response.
func BookingIDs(bookings []openapi.BookingID) []int {
	ids := make([]int, len(bookings))

	for i, booking := range bookings {
		ids[i] = booking.BookingID
	}

	return ids
}

// SampleBookingIDs returns at most limit identifiers from the head of a list.
func SampleBookingIDs(bookings []openapi.BookingID, limit int) []int {
	ids := BookingIDs(bookings)

	if len(ids) > limit {
		ids = ids[:limit]
	}

	return ids
}

// VerifyBookingPresence verifies that bookings are present in the list.
func VerifyBookingPresence(bookings []openapi.BookingID, expectedBookingIDs ...int) {
	missing := set.New[int](expectedBookingIDs...).Difference(set.New[int](BookingIDs(bookings)...))

	Expect(slices.Sorted(missing.All())).To(BeEmpty(), "Expected all booking IDs to be present in the list")
}

// VerifyBookingFields verifies that a raw booking document carries every
// required field.
func VerifyBookingFields(document map[string]interface{}) {
	for _, field := range RequiredBookingFields {
		Expect(document).To(HaveKey(field))
	}

	Expect(document["bookingdates"]).To(SatisfyAll(HaveKey("checkin"), HaveKey("checkout")))
}

// VerifyBookingMatches verifies the identifying fields of a booking match
// what was submitted, exactly.
func VerifyBookingMatches(actual, expected openapi.Booking) {
	Expect(actual.FirstName).To(Equal(expected.FirstName))
	Expect(actual.LastName).To(Equal(expected.LastName))
	Expect(actual.TotalPrice).To(Equal(expected.TotalPrice))
}
