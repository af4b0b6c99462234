package openapi

import (
	"errors"
	"regexp"
	"time"
)

var ErrInvalidDate = errors.New("invalid date: must be of the form YYYY-MM-DD")

var dateValidationRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

// Date is a calendar date as the booking service serializes it.  Values are
// kept verbatim so bookings written by other clients with junk dates still
// decode, call Validate or Time when the content matters.
type Date string

// NewDate formats a time as a booking date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) Validate() error {
	if !dateValidationRegex.MatchString(string(d)) {
		return ErrInvalidDate
	}

	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDate
	}

	return nil
}

func (d Date) Time() (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}

	return time.Parse(DateLayout, string(d))
}

func (d Date) String() string {
	return string(d)
}
