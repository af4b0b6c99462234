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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/pkg/openapi"
	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Reading Bookings", func() {
	Context("When listing bookings", func() {
		Describe("Given the service holds bookings", func() {
			It("should return a non-empty list of booking IDs", func() {
				bookings, err := client.ListBookings(ctx, openapi.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())

				// Other clients share the service, so only non-emptiness is asserted.
				Expect(bookings).NotTo(BeEmpty())

				for _, booking := range bookings {
					Expect(booking.BookingID).To(BeNumerically(">", 0))
				}

				GinkgoWriter.Printf("Found %d bookings\n", len(bookings))
			})

			It("should include a freshly created booking", func() {
				created := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())

				bookings, err := client.ListBookings(ctx, openapi.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())

				api.VerifyBookingPresence(bookings, created.BookingID)
			})
		})

		Describe("Given a name filter", func() {
			It("should return the booking with that guest name", func() {
				payload := api.NewBookingPayload().WithUniqueSuffix().Build()
				created := api.CreateBookingWithCleanup(client, authorized, ctx, payload)

				bookings, err := client.ListBookings(ctx, openapi.BookingFilter{
					FirstName: payload.FirstName,
					LastName:  payload.LastName,
				})
				Expect(err).NotTo(HaveOccurred())

				Expect(api.BookingIDs(bookings)).To(ContainElement(created.BookingID))
			})
		})
	})

	Context("When retrieving a specific booking", func() {
		Describe("Given the booking exists", func() {
			It("should return a listed booking", func() {
				bookings, err := client.ListBookings(ctx, openapi.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())
				Expect(bookings).NotTo(BeEmpty())

				_, err = client.GetBooking(ctx, bookings[0].BookingID)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should include all required fields", func() {
				created := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())

				document, err := client.GetBookingDocument(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())

				api.VerifyBookingFields(document)
			})

			It("should include all required fields for every listed booking", func() {
				bookings, err := client.ListBookings(ctx, openapi.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())

				// Other clients share the service, only field presence is
				// asserted for bookings this suite did not write.
				lenient := client.WithoutValidation()

				for _, bookingID := range api.SampleBookingIDs(bookings, config.MaxPropertySamples) {
					document, err := lenient.GetBookingDocument(ctx, bookingID)
					Expect(err).NotTo(HaveOccurred(), "Expected listed booking %d to be readable", bookingID)

					api.VerifyBookingFields(document)
				}
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should return a not found error", func() {
				_, err := client.GetBooking(ctx, config.NonexistentID)
				Expect(err).To(HaveOccurred())
				Expect(api.StatusCode(err)).To(Equal(http.StatusNotFound))
				Expect(err.Error()).To(ContainSubstring("404"))
			})

			It("should return a not found error for a malformed ID", func() {
				_, err := client.GetBookingByReference(ctx, "not-a-booking")
				Expect(api.StatusCode(err)).To(Equal(http.StatusNotFound))
			})
		})
	})
})
