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

package api

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL       = "https://restful-booker.herokuapp.com"
	DefaultUsername      = "admin"
	DefaultPassword      = "password123"
	DefaultNonexistentID = 999999
)

type TestConfig struct {
	BaseURL            string
	Username           string
	Password           string
	NonexistentID      int
	UseFake            bool
	RequestTimeout     time.Duration
	TestTimeout        time.Duration
	MaxPropertySamples int
	ValidateResponses  bool
	DebugLogging       bool
	LogRequests        bool
	LogResponses       bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error naming every variable that is missing or malformed.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	env := &envReader{}

	config := &TestConfig{
		BaseURL:            env.getStringWithDefault("BOOKER_BASE_URL", DefaultBaseURL),
		Username:           env.getStringWithDefault("BOOKER_USERNAME", DefaultUsername),
		Password:           env.getStringWithDefault("BOOKER_PASSWORD", DefaultPassword),
		NonexistentID:      env.getIntWithDefault("BOOKER_NONEXISTENT_ID", DefaultNonexistentID),
		UseFake:            env.getBoolWithDefault("BOOKER_USE_FAKE", false),
		RequestTimeout:     env.getDurationWithDefault("REQUEST_TIMEOUT", 0),
		TestTimeout:        env.getDurationWithDefault("TEST_TIMEOUT", time.Minute),
		MaxPropertySamples: env.getIntWithDefault("MAX_PROPERTY_SAMPLES", 5),
		ValidateResponses:  env.getBoolWithDefault("VALIDATE_RESPONSES", true),
		DebugLogging:       env.getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:        env.getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:       env.getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validateRequiredFields(config, env.invalid...); err != nil {
		return nil, err
	}

	return config, nil
}

// envReader reads typed environment variables, remembering the names of
// any that are set but cannot be parsed.
type envReader struct {
	invalid []string
}

// getStringWithDefault gets a string from environment variable or returns default.
func (e *envReader) getStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// getIntWithDefault gets an integer from environment variable or returns default.
func (e *envReader) getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return defaultValue
	}

	return intValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
// A unit is required, "30" is rejected rather than read as nanoseconds.
func (e *envReader) getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		e.invalid = append(e.invalid, key)
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func (e *envReader) getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../.env",    // From test/api directory
		"../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Values already in the environment win.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set and sane.
// Variables already known to be malformed are reported alongside.
func validateRequiredFields(config *TestConfig, malformed ...string) error {
	invalid := slices.Clone(malformed)

	if !config.UseFake {
		if u, err := url.Parse(config.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid = append(invalid, "BOOKER_BASE_URL")
		}
	}

	if config.Username == "" {
		invalid = append(invalid, "BOOKER_USERNAME")
	}

	if config.Password == "" {
		invalid = append(invalid, "BOOKER_PASSWORD")
	}

	if config.MaxPropertySamples < 1 {
		invalid = append(invalid, "MAX_PROPERTY_SAMPLES")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("missing or invalid configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(invalid, ", "))
	}

	return nil
}
