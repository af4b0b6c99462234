//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/pkg/openapi"
	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Security and Authentication", func() {
	Context("When requesting a token", func() {
		Describe("Given valid credentials", func() {
			It("should issue a token", func() {
				token, err := client.CreateToken(ctx, openapi.Credentials{
					Username: config.Username,
					Password: config.Password,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(token).NotTo(BeEmpty())
			})
		})

		Describe("Given invalid credentials", func() {
			It("should refuse with a reason", func() {
				_, err := client.CreateToken(ctx, openapi.Credentials{
					Username: config.Username,
					Password: "not-" + config.Password,
				})
				Expect(err).To(MatchError(api.ErrBadCredentials))
			})
		})
	})

	Context("When using the session token", func() {
		Describe("Given a booking created anonymously", func() {
			It("should authorize mutation of that booking", func() {
				created := api.CreateBookingWithCleanup(client, authorized, ctx, api.NewBookingPayload().Build())

				_, err := authorized.PartialUpdateBooking(ctx, created.BookingID, openapi.BookingPatch{})
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})
})
