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

	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Creating Bookings", func() {
	Context("When submitting a booking", func() {
		Describe("Given the sample booking", func() {
			It("should return an integer booking ID and the booking", func() {
				created := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())

				Expect(created.BookingID).To(BeNumerically(">", 0))
				Expect(created.Booking.FirstName).To(Equal("Kavya"))
			})

			It("should echo the submitted values exactly", func() {
				payload := api.NewBookingPayload().Build()
				created := api.CreateBookingWithCleanup(client, authorized, ctx, payload)

				api.VerifyBookingMatches(created.Booking, payload)
				Expect(created.Booking.DepositPaid).To(Equal(payload.DepositPaid))
				Expect(created.Booking.BookingDates).To(Equal(payload.BookingDates))
				Expect(created.Booking.AdditionalNeeds).To(HaveValue(Equal("Breakfast")))
			})

			It("should make the booking readable by ID", func() {
				payload := api.NewBookingPayload().Build()
				created := api.CreateBookingWithCleanup(client, authorized, ctx, payload)

				booking, err := client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
				Expect(*booking).To(Equal(payload))
			})

			It("should allocate a new ID for identical content", func() {
				first := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())
				second := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())

				Expect(second.BookingID).NotTo(Equal(first.BookingID))
			})
		})

		DescribeTable("Given any valid booking, the created booking matches it",
			func(builder func() *api.BookingPayloadBuilder) {
				payload := builder().Build()
				created := api.CreateBookingWithCleanup(client, authorized, ctx, payload)

				api.VerifyBookingMatches(created.Booking, payload)
			},
			Entry("the sample booking", api.NewBookingPayload),
			Entry("a unique guest", func() *api.BookingPayloadBuilder {
				return api.NewBookingPayload().WithFirstName("Ada").WithUniqueSuffix()
			}),
			Entry("a free stay", func() *api.BookingPayloadBuilder {
				return api.NewBookingPayload().WithTotalPrice(0).WithDepositPaid(false)
			}),
			Entry("an expensive stay", func() *api.BookingPayloadBuilder {
				return api.NewBookingPayload().WithTotalPrice(99999).WithDates("2026-12-24", "2027-01-02")
			}),
			Entry("no additional needs", func() *api.BookingPayloadBuilder {
				return api.NewBookingPayload().WithoutAdditionalNeeds()
			}),
		)

		Describe("Given the optional field is omitted", func() {
			It("should create the booking without additional needs", func() {
				created := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().WithoutAdditionalNeeds().Build())

				Expect(created.Booking.AdditionalNeeds).To(BeNil())
			})
		})

		Describe("Given a malformed booking", func() {
			It("should reject a booking missing required fields", func() {
				_, err := client.CreateBookingDocument(ctx, map[string]interface{}{
					"lastname":   "Test",
					"totalprice": 150,
				})
				Expect(err).To(HaveOccurred())

				// The service reports this as a server error rather than a bad request.
				Expect(api.StatusCode(err)).To(Equal(http.StatusInternalServerError))
			})
		})
	})
})
