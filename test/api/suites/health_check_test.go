//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/pkg/openapi"
	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Health Check", func() {
	DescribeTable("Given any authentication state, ping answers 201",
		func(clientFor func() *api.APIClient) {
			Expect(clientFor().Ping(ctx)).To(Succeed())
		},
		Entry("anonymously", func() *api.APIClient { return client }),
		Entry("with a session token", func() *api.APIClient { return authorized }),
		Entry("with a forged token", func() *api.APIClient { return client.WithAuthToken("forged-token") }),
		Entry("with basic authentication", func() *api.APIClient {
			return client.WithBasicAuth(openapi.Credentials{Username: config.Username, Password: config.Password})
		}),
	)
})
