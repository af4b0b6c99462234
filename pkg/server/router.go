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

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

// ServerInterface is implemented by the booking handler.
type ServerInterface interface {
	GetPing(w http.ResponseWriter, r *http.Request)
	PostAuth(w http.ResponseWriter, r *http.Request)
	GetBooking(w http.ResponseWriter, r *http.Request, params openapi.GetBookingParams)
	PostBooking(w http.ResponseWriter, r *http.Request)
	GetBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter)
	PutBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter)
	PatchBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter)
	DeleteBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter)
}

// wrapper binds parameters before calling the handler.
type wrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (s *wrapper) GetBooking(w http.ResponseWriter, r *http.Request) {
	var params openapi.GetBookingParams

	query := r.URL.Query()

	bindings := []struct {
		name string
		dest **string
	}{
		{"firstname", &params.Firstname},
		{"lastname", &params.Lastname},
		{"checkin", &params.Checkin},
		{"checkout", &params.Checkout},
	}

	for _, binding := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, binding.name, query, binding.dest); err != nil {
			s.errorHandler(w, r, err)
			return
		}
	}

	s.handler.GetBooking(w, r, params)
}

func (s *wrapper) bookingID(w http.ResponseWriter, r *http.Request) (openapi.BookingIDParameter, bool) {
	var bookingID openapi.BookingIDParameter

	options := runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}

	if err := runtime.BindStyledParameterWithOptions("simple", "bookingID", chi.URLParam(r, "bookingID"), &bookingID, options); err != nil {
		s.errorHandler(w, r, err)
		return "", false
	}

	return bookingID, true
}

func (s *wrapper) withBookingID(f func(http.ResponseWriter, *http.Request, openapi.BookingIDParameter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, ok := s.bookingID(w, r)
		if !ok {
			return
		}

		f(w, r, bookingID)
	}
}

// routes registers the service's endpoints.
func routes(router chi.Router, handler ServerInterface, errorHandler func(w http.ResponseWriter, r *http.Request, err error)) {
	s := &wrapper{
		handler:      handler,
		errorHandler: errorHandler,
	}

	router.Get("/ping", handler.GetPing)
	router.Post("/auth", handler.PostAuth)
	router.Get("/booking", s.GetBooking)
	router.Post("/booking", handler.PostBooking)
	router.Get("/booking/{bookingID}", s.withBookingID(handler.GetBookingBookingID))
	router.Put("/booking/{bookingID}", s.withBookingID(handler.PutBookingBookingID))
	router.Patch("/booking/{bookingID}", s.withBookingID(handler.PatchBookingBookingID))
	router.Delete("/booking/{bookingID}", s.withBookingID(handler.DeleteBookingBookingID))
}
