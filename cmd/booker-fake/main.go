/*
Copyright 2025 the Unikorn Authors.
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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/unikorn-cloud/booker/pkg/server"
)

func main() {
	options := server.DefaultOptions()

	options.AddFlags(pflag.CommandLine)

	debug := pflag.Bool("debug", false, "Enable debug logging.")

	pflag.Parse()

	config := zap.NewProductionConfig()
	if *debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("service starting", zap.String("application", "booker-fake"), zap.Int("seedBookings", options.SeedBookings))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(options, logger).Run(ctx); err != nil {
		logger.Error("service failed", zap.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
