package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/unikorn-cloud/booker/pkg/openapi"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// GenerateTestID returns a name unique to this run, timestamped so leftovers
// on a shared service can be traced back.
func GenerateTestID() string {
	return generateRandomName("test-" + time.Now().UTC().Format("20060102150405"))
}

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload openapi.Booking
}

// NewBookingPayload creates a builder seeded with the sample booking, the
// same values every time.
func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: openapi.Booking{
			FirstName:   "Kavya",
			LastName:    "Test",
			TotalPrice:  150,
			DepositPaid: true,
			BookingDates: openapi.BookingDates{
				Checkin:  "2025-01-01",
				Checkout: "2025-01-07",
			},
			AdditionalNeeds: ptr.To("Breakfast"),
		},
	}
}

// WithFirstName sets the guest's first name.
func (b *BookingPayloadBuilder) WithFirstName(name string) *BookingPayloadBuilder {
	b.payload.FirstName = name
	return b
}

// WithLastName sets the guest's last name.
func (b *BookingPayloadBuilder) WithLastName(name string) *BookingPayloadBuilder {
	b.payload.LastName = name
	return b
}

// WithUniqueSuffix appends a unique suffix to the last name so bookings
// from different runs can be told apart by content.
func (b *BookingPayloadBuilder) WithUniqueSuffix() *BookingPayloadBuilder {
	b.payload.LastName = generateRandomName(b.payload.LastName)
	return b
}

// WithTotalPrice sets the price.
func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload.TotalPrice = price
	return b
}

// WithDepositPaid sets whether a deposit was paid.
func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload.DepositPaid = paid
	return b
}

// WithDates sets the stay range.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout openapi.Date) *BookingPayloadBuilder {
	b.payload.BookingDates = openapi.BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

// WithAdditionalNeeds sets the optional extra request.
func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = ptr.To(needs)
	return b
}

// WithoutAdditionalNeeds omits the optional extra request.
func (b *BookingPayloadBuilder) WithoutAdditionalNeeds() *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = nil
	return b
}

// Build returns the completed booking payload.
func (b *BookingPayloadBuilder) Build() openapi.Booking {
	payload := b.payload

	if b.payload.AdditionalNeeds != nil {
		payload.AdditionalNeeds = ptr.To(*b.payload.AdditionalNeeds)
	}

	return payload
}
