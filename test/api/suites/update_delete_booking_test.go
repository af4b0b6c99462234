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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/pkg/openapi"
	"github.com/unikorn-cloud/booker/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Updating and Deleting Bookings", func() {
	var created *openapi.CreatedBooking

	BeforeEach(func() {
		created = api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())
	})

	Context("When deleting a booking", func() {
		Describe("Given no authorization", func() {
			It("should be forbidden and leave the booking in place", func() {
				err := client.DeleteBooking(ctx, created.BookingID)
				Expect(err).To(HaveOccurred())
				Expect(api.StatusCode(err)).To(Equal(http.StatusForbidden))

				_, err = client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should be forbidden with a forged token", func() {
				err := client.WithAuthToken("forged-token").DeleteBooking(ctx, created.BookingID)
				Expect(api.StatusCode(err)).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given a valid token", func() {
			It("should delete the booking with a 201", func() {
				err := authorized.DeleteBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should no longer return the booking", func() {
				Expect(authorized.DeleteBooking(ctx, created.BookingID)).To(Succeed())

				Eventually(func() int {
					_, getErr := client.GetBooking(ctx, created.BookingID)
					return api.StatusCode(getErr)
				}).WithTimeout(config.TestTimeout).WithPolling(time.Second).Should(Equal(http.StatusNotFound))
			})

			It("should not allow the booking to be deleted twice", func() {
				Expect(authorized.DeleteBooking(ctx, created.BookingID)).To(Succeed())

				err := authorized.DeleteBooking(ctx, created.BookingID)
				Expect(api.StatusCode(err)).To(Equal(http.StatusMethodNotAllowed))
			})
		})

		Describe("Given basic authentication", func() {
			It("should delete the booking", func() {
				basic := client.WithBasicAuth(openapi.Credentials{
					Username: config.Username,
					Password: config.Password,
				})

				Expect(basic.DeleteBooking(ctx, created.BookingID)).To(Succeed())
			})
		})
	})

	Context("When replacing a booking", func() {
		Describe("Given a valid token", func() {
			It("should replace every field", func() {
				replacement := api.NewBookingPayload().
					WithFirstName("Ravi").
					WithLastName("Replaced").
					WithTotalPrice(275).
					WithDepositPaid(false).
					WithDates("2025-02-01", "2025-02-03").
					WithAdditionalNeeds("Dinner").
					Build()

				updated, err := authorized.UpdateBooking(ctx, created.BookingID, replacement)
				Expect(err).NotTo(HaveOccurred())
				Expect(*updated).To(Equal(replacement))

				booking, err := client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
				Expect(*booking).To(Equal(replacement))
			})
		})

		Describe("Given no authorization", func() {
			It("should be forbidden", func() {
				_, err := client.UpdateBooking(ctx, created.BookingID, api.NewBookingPayload().WithFirstName("Mallory").Build())
				Expect(api.StatusCode(err)).To(Equal(http.StatusForbidden))

				booking, err := client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
				Expect(booking.FirstName).To(Equal("Kavya"))
			})
		})
	})

	Context("When partially updating a booking", func() {
		Describe("Given a valid token", func() {
			It("should change only the supplied fields", func() {
				updated, err := authorized.PartialUpdateBooking(ctx, created.BookingID, openapi.BookingPatch{
					FirstName:  ptr.To("Meera"),
					TotalPrice: ptr.To(180),
				})
				Expect(err).NotTo(HaveOccurred())

				Expect(updated.FirstName).To(Equal("Meera"))
				Expect(updated.TotalPrice).To(Equal(180))
				Expect(updated.LastName).To(Equal(created.Booking.LastName))
				Expect(updated.BookingDates).To(Equal(created.Booking.BookingDates))
			})
		})

		Describe("Given no authorization", func() {
			It("should be forbidden", func() {
				_, err := client.PartialUpdateBooking(ctx, created.BookingID, openapi.BookingPatch{
					FirstName: ptr.To("Mallory"),
				})
				Expect(api.StatusCode(err)).To(Equal(http.StatusForbidden))
			})
		})
	})
})
