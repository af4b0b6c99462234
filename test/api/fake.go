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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unikorn-cloud/booker/pkg/server"
)

// fakeLogger writes the fake's logs to the Ginkgo writer when debugging,
// so they are reported alongside the failing test.
func fakeLogger(config *TestConfig) *zap.Logger {
	if !config.DebugLogging {
		return zap.NewNop()
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(GinkgoWriter),
		zap.DebugLevel,
	)

	return zap.New(core).Named("booker-fake")
}

// StartFakeService serves an in-memory booking service for the remainder of
// the suite and points the configuration at it.  Credentials are taken from
// the configuration so the auth fixture works unchanged.
func StartFakeService(config *TestConfig) {
	options := server.DefaultOptions()
	options.Username = config.Username
	options.Password = config.Password

	handler, err := server.New(options, fakeLogger(config)).Handler()
	Expect(err).NotTo(HaveOccurred())

	fake := httptest.NewServer(handler)
	DeferCleanup(fake.Close)

	config.BaseURL = fake.URL

	GinkgoWriter.Printf("Serving fake booking service on %s\n", fake.URL)
}
