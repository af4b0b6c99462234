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
	"time"

	"github.com/spf13/pflag"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// ListenAddress is where the HTTP server listens.
	ListenAddress string

	// Username and Password are the only credentials /auth accepts.
	Username string
	Password string

	// SeedBookings is the number of bookings created at start up.
	SeedBookings int

	// ReadHeaderTimeout bounds slow clients.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultOptions returns options mirroring the public service.
func DefaultOptions() Options {
	return Options{
		ListenAddress:     ":3001",
		Username:          "admin",
		Password:          "password123",
		SeedBookings:      10,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	defaults := DefaultOptions()

	f.StringVar(&o.ListenAddress, "listen-address", defaults.ListenAddress, "API listener address.")
	f.StringVar(&o.Username, "username", defaults.Username, "Username accepted by /auth.")
	f.StringVar(&o.Password, "password", defaults.Password, "Password accepted by /auth.")
	f.IntVar(&o.SeedBookings, "seed-bookings", defaults.SeedBookings, "Number of bookings to create at start up.")
	f.DurationVar(&o.ReadHeaderTimeout, "read-header-timeout", defaults.ReadHeaderTimeout, "How long to wait for request headers.")
	f.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "How long to wait for in flight requests on shutdown.")
}
