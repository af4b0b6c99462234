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
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unikorn-cloud/booker/pkg/server/errors"
	"github.com/unikorn-cloud/booker/pkg/server/handler"
	"github.com/unikorn-cloud/booker/pkg/server/handler/auth"
	"github.com/unikorn-cloud/booker/pkg/server/handler/booking"
)

// Server is an in-memory stand in for the booking service.
type Server struct {
	options Options
	logger  *zap.Logger
}

func New(options Options, logger *zap.Logger) *Server {
	return &Server{
		options: options,
		logger:  logger,
	}
}

// Handler returns a fresh service, each call has its own bookings and tokens.
func (s *Server) Handler() (http.Handler, error) {
	store := booking.NewStore()
	store.Seed(s.options.SeedBookings)

	h, err := handler.New(store, auth.NewIssuer(s.options.Username, s.options.Password), s.logger)
	if err != nil {
		return nil, fmt.Errorf("creating handler: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.logRequests)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteText(w, http.StatusNotFound)
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteText(w, http.StatusMethodNotAllowed)
	})

	routes(router, h, func(w http.ResponseWriter, r *http.Request, err error) {
		errors.HandleError(w, r, s.logger, errors.HTTPBadRequest("invalid parameter").WithError(err))
	})

	return router, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("traceparent", r.Header.Get("Traceparent")))
	})
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              s.options.ListenAddress,
		Handler:           h,
		ReadHeaderTimeout: s.options.ReadHeaderTimeout,
	}

	errs := make(chan error, 1)

	go func() {
		s.logger.Info("listening", zap.String("address", s.options.ListenAddress))

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errs; err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
