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

package booking

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/unikorn-cloud/booker/pkg/openapi"

	"k8s.io/utils/ptr"
)

var ErrNotFound = errors.New("booking not found")

// Store is an in-memory booking database.  Identifiers are allocated from a
// monotonic counter and never reused.
type Store struct {
	lock     sync.RWMutex
	bookings map[int]openapi.Booking
	nextID   int
}

// NewStore returns an empty store, the first booking gets ID 1.
func NewStore() *Store {
	return &Store{
		bookings: map[int]openapi.Booking{},
		nextID:   1,
	}
}

// Seed creates a number of plausible bookings so list operations on a fresh
// service return something.
func (s *Store) Seed(count int) {
	firstNames := []string{"Sally", "Jim", "Mark", "Mary", "Susan", "Eric", "Jeff"}
	lastNames := []string{"Brown", "Jones", "Wilson", "Jackson", "Smith", "Ericsson"}
	needs := []string{"Breakfast", "Late checkout", "Extra pillow"}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := range count {
		checkin := start.AddDate(0, 0, i*3)

		booking := openapi.Booking{
			FirstName:   firstNames[i%len(firstNames)],
			LastName:    lastNames[i%len(lastNames)],
			TotalPrice:  100 + i*37%900,
			DepositPaid: i%2 == 0,
			BookingDates: openapi.BookingDates{
				Checkin:  openapi.NewDate(checkin),
				Checkout: openapi.NewDate(checkin.AddDate(0, 0, 1+i%5)),
			},
		}

		if i%3 != 2 {
			booking.AdditionalNeeds = ptr.To(needs[i%len(needs)])
		}

		s.Create(booking)
	}
}

// Create stores a booking and returns its new ID.
func (s *Store) Create(booking openapi.Booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = booking

	return id
}

func (s *Store) Get(id int) (openapi.Booking, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return openapi.Booking{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return booking, nil
}

// List returns the IDs of bookings matching the filter in ascending order.
func (s *Store) List(filter openapi.BookingFilter) ([]openapi.BookingID, error) {
	checkin, checkout, err := filterDates(filter)
	if err != nil {
		return nil, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]int, 0, len(s.bookings))

	for id, booking := range s.bookings {
		if filter.FirstName != "" && booking.FirstName != filter.FirstName {
			continue
		}

		if filter.LastName != "" && booking.LastName != filter.LastName {
			continue
		}

		if !checkin.IsZero() && !onOrAfter(booking.BookingDates.Checkin, checkin) {
			continue
		}

		if !checkout.IsZero() && !onOrBefore(booking.BookingDates.Checkout, checkout) {
			continue
		}

		ids = append(ids, id)
	}

	slices.Sort(ids)

	result := make([]openapi.BookingID, len(ids))

	for i, id := range ids {
		result[i] = openapi.BookingID{BookingID: id}
	}

	return result, nil
}

// Update replaces a booking.
func (s *Store) Update(id int, booking openapi.Booking) (openapi.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return openapi.Booking{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	s.bookings[id] = booking

	return booking, nil
}

// Patch merges the set fields of a patch into a booking.
func (s *Store) Patch(id int, patch openapi.BookingPatch) (openapi.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return openapi.Booking{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	booking = booking.Apply(patch)

	s.bookings[id] = booking

	return booking, nil
}

func (s *Store) Delete(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	delete(s.bookings, id)

	return nil
}

func filterDates(filter openapi.BookingFilter) (time.Time, time.Time, error) {
	var checkin, checkout time.Time

	if filter.Checkin != "" {
		t, err := filter.Checkin.Time()
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("checkin filter: %w", err)
		}

		checkin = t
	}

	if filter.Checkout != "" {
		t, err := filter.Checkout.Time()
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("checkout filter: %w", err)
		}

		checkout = t
	}

	return checkin, checkout, nil
}

// onOrAfter treats unparseable stored dates as non-matching.
func onOrAfter(d openapi.Date, t time.Time) bool {
	v, err := d.Time()
	if err != nil {
		return false
	}

	return !v.Before(t)
}

func onOrBefore(d openapi.Date, t time.Time) bool {
	v, err := d.Time()
	if err != nil {
		return false
	}

	return !v.After(t)
}
