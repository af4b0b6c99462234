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

//nolint:revive
package handler

import (
	goerrors "errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/unikorn-cloud/booker/pkg/openapi"
	"github.com/unikorn-cloud/booker/pkg/server/errors"
	"github.com/unikorn-cloud/booker/pkg/server/handler/auth"
	"github.com/unikorn-cloud/booker/pkg/server/handler/booking"
	"github.com/unikorn-cloud/booker/pkg/server/util"
)

// badCredentialsReason is what the service says when /auth is refused,
// with a 200 status.
const badCredentialsReason = "Bad credentials"

type Handler struct {
	// store holds all bookings.
	store *booking.Store

	// issuer hands out and checks tokens.
	issuer *auth.Issuer

	// validator checks request bodies.
	validator *bodyValidator

	logger *zap.Logger
}

func New(store *booking.Store, issuer *auth.Issuer, logger *zap.Logger) (*Handler, error) {
	validator, err := newBodyValidator()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		store:     store,
		issuer:    issuer,
		validator: validator,
		logger:    logger,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	h.setUncacheable(w)

	if err := util.WriteJSONResponse(w, r, status, body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	errors.HandleError(w, r, h.logger, err)
}

// readBody reads the request body.  Oversized bodies are refused with a 413,
// other read failures are reported as fail.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request, fail *errors.Error) ([]byte, bool) {
	body, err := util.ReadBody(w, r)
	if err != nil {
		if goerrors.Is(err, util.ErrBodyTooLarge) {
			h.handleError(w, r, errors.HTTPRequestEntityTooLarge("request body too large").WithError(err))
			return nil, false
		}

		h.handleError(w, r, fail.WithError(err))

		return nil, false
	}

	return body, true
}

// parseBookingID accepts only decimal integers, anything else cannot name
// a booking.
func parseBookingID(bookingID openapi.BookingIDParameter) (int, bool) {
	id, err := strconv.Atoi(bookingID)
	if err != nil {
		return 0, false
	}

	return id, true
}

func (h *Handler) GetPing(w http.ResponseWriter, r *http.Request) {
	errors.WriteText(w, http.StatusCreated)
}

func (h *Handler) PostAuth(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r, errors.HTTPBadRequest("unable to read credentials"))
	if !ok {
		return
	}

	var credentials openapi.Credentials

	if err := decode(h.validator.credentials, body, &credentials); err != nil {
		h.handleError(w, r, errors.HTTPBadRequest("invalid credentials body").WithError(err))
		return
	}

	token, err := h.issuer.Issue(credentials)
	if err != nil {
		if goerrors.Is(err, auth.ErrBadCredentials) {
			h.writeJSON(w, r, http.StatusOK, openapi.TokenResponse{Reason: badCredentialsReason})
			return
		}

		h.handleError(w, r, err)

		return
	}

	h.logger.Debug("issued token")

	h.writeJSON(w, r, http.StatusOK, openapi.TokenResponse{Token: token})
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, params openapi.GetBookingParams) {
	result, err := h.store.List(params.Filter())
	if err != nil {
		h.handleError(w, r, errors.ServerError("unable to list bookings").WithError(err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) PostBooking(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r, errors.ServerError("unable to read booking"))
	if !ok {
		return
	}

	var request openapi.Booking

	// The service answers a malformed create with a 500, not a 400.
	if err := decode(h.validator.booking, body, &request); err != nil {
		h.handleError(w, r, errors.ServerError("invalid booking").WithError(err))
		return
	}

	id := h.store.Create(request)

	h.logger.Info("created booking", zap.Int("bookingid", id))

	h.writeJSON(w, r, http.StatusOK, openapi.CreatedBooking{BookingID: id, Booking: request})
}

func (h *Handler) GetBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	id, ok := parseBookingID(bookingID)
	if !ok {
		h.handleError(w, r, errors.HTTPNotFound("malformed booking ID "+bookingID))
		return
	}

	result, err := h.store.Get(id)
	if err != nil {
		h.handleError(w, r, errors.HTTPNotFound("booking not found").WithError(err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, result)
}

// authorize is checked before the booking is looked up, so unauthorized
// requests for missing bookings are forbidden rather than not allowed.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if err := h.issuer.Authorize(r); err != nil {
		h.handleError(w, r, errors.HTTPForbidden("mutation refused").WithError(err))
		return false
	}

	return true
}

// lookup resolves the booking ID for a mutation, the service answers
// mutations of unknown bookings with 405.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) (int, bool) {
	id, ok := parseBookingID(bookingID)
	if !ok {
		h.handleError(w, r, errors.HTTPMethodNotAllowed("malformed booking ID "+bookingID))
		return 0, false
	}

	if _, err := h.store.Get(id); err != nil {
		h.handleError(w, r, errors.HTTPMethodNotAllowed("booking not found").WithError(err))
		return 0, false
	}

	return id, true
}

func (h *Handler) PutBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := h.lookup(w, r, bookingID)
	if !ok {
		return
	}

	body, ok := h.readBody(w, r, errors.HTTPBadRequest("unable to read booking"))
	if !ok {
		return
	}

	var request openapi.Booking

	if err := decode(h.validator.booking, body, &request); err != nil {
		h.handleError(w, r, errors.HTTPBadRequest("invalid booking").WithError(err))
		return
	}

	result, err := h.store.Update(id, request)
	if err != nil {
		h.handleError(w, r, errors.HTTPMethodNotAllowed("booking not found").WithError(err))
		return
	}

	h.logger.Info("updated booking", zap.Int("bookingid", id))

	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) PatchBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := h.lookup(w, r, bookingID)
	if !ok {
		return
	}

	body, ok := h.readBody(w, r, errors.HTTPBadRequest("unable to read booking patch"))
	if !ok {
		return
	}

	var request openapi.BookingPatch

	if err := decode(h.validator.bookingPatch, body, &request); err != nil {
		h.handleError(w, r, errors.HTTPBadRequest("invalid booking patch").WithError(err))
		return
	}

	result, err := h.store.Patch(id, request)
	if err != nil {
		h.handleError(w, r, errors.HTTPMethodNotAllowed("booking not found").WithError(err))
		return
	}

	h.logger.Info("patched booking", zap.Int("bookingid", id))

	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) DeleteBookingBookingID(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := h.lookup(w, r, bookingID)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.handleError(w, r, errors.HTTPMethodNotAllowed("booking not found").WithError(err))
		return
	}

	h.logger.Info("deleted booking", zap.Int("bookingid", id))

	errors.WriteText(w, http.StatusCreated)
}
