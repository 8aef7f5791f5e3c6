/*
 * Configuration - unit tests
 *
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package clouddns

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NewConfiguration tests reading the configuration from the
// environment, with and without the required token.
func Test_NewConfiguration(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("CLOUDDNS_API_TOKEN", "test-token")
		cfg, err := NewConfiguration()
		require.NoError(t, err)
		assert.Equal(t, "test-token", cfg.APIToken)
		assert.Equal(t, "https://api.clouddns.io/v1", cfg.APIEndpointURL)
		assert.Empty(t, cfg.Project)
		assert.False(t, cfg.Debug)
		assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
		assert.Equal(t, "http://169.254.169.254/metadata/v1/project-id", cfg.MetadataURL)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("CLOUDDNS_API_TOKEN", "test-token")
		t.Setenv("CLOUDDNS_API_URL", "https://dns.internal/v2")
		t.Setenv("CLOUDDNS_PROJECT", "env-project")
		t.Setenv("CLOUDDNS_DEBUG", "true")
		t.Setenv("REQUEST_TIMEOUT", "5000")
		t.Setenv("CLOUDDNS_DEFAULT_TTL", "3600")
		cfg, err := NewConfiguration()
		require.NoError(t, err)
		assert.Equal(t, "https://dns.internal/v2", cfg.APIEndpointURL)
		assert.Equal(t, "env-project", cfg.Project)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 3600, cfg.DefaultTTL)
		assert.Equal(t, 5*time.Second, cfg.GetRequestTimeout())
	})

	t.Run("Missing token", func(t *testing.T) {
		// t.Setenv registers the restore; the variable itself must be
		// absent for the required check to trigger.
		t.Setenv("CLOUDDNS_API_TOKEN", "")
		os.Unsetenv("CLOUDDNS_API_TOKEN")
		_, err := NewConfiguration()
		assert.Error(t, err)
	})
}

// Test_Configuration_MetadataProbe tests the metadata request and its
// failure modes.
func Test_Configuration_MetadataProbe(t *testing.T) {
	type testCase struct {
		name          string
		status        int
		body          string
		expected      string
		expectedError bool
	}

	run := func(t *testing.T, tc testCase) {
		var flavor string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			flavor = r.Header.Get("Metadata-Flavor")
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))
		defer server.Close()

		cfg := Configuration{MetadataURL: server.URL, MetadataTimeout: 1000}
		probe := cfg.MetadataProbe()
		actual, err := probe(context.Background())
		assert.Equal(t, "CloudDNS", flavor)
		if tc.expectedError {
			assert.Error(t, err)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual)
	}

	testCases := []testCase{
		{
			name:     "Project id answered",
			status:   http.StatusOK,
			body:     "metadata-project\n",
			expected: "metadata-project",
		},
		{
			name:          "Service answers an error",
			status:        http.StatusNotFound,
			body:          "not found",
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

// Test_ResolveProject tests the resolution precedence: explicit argument,
// configured project, metadata probe.
func Test_ResolveProject(t *testing.T) {
	type testCase struct {
		name          string
		explicit      string
		configured    string
		probe         ProjectProbe
		expected      string
		expectedError bool
	}

	okProbe := func(ctx context.Context) (string, error) {
		return "metadata-project", nil
	}

	run := func(t *testing.T, tc testCase) {
		cfg := &Configuration{Project: tc.configured}
		actual, err := ResolveProject(context.Background(), tc.explicit, cfg, tc.probe)
		if tc.expectedError {
			assert.Error(t, err)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual)
	}

	testCases := []testCase{
		{
			name:       "Explicit wins over everything",
			explicit:   "explicit-project",
			configured: "env-project",
			probe:      okProbe,
			expected:   "explicit-project",
		},
		{
			name:       "Configured wins over the probe",
			configured: "env-project",
			probe: func(ctx context.Context) (string, error) {
				return "", errors.New("must not be called")
			},
			expected: "env-project",
		},
		{
			name:     "Probe is the last resort",
			probe:    okProbe,
			expected: "metadata-project",
		},
		{
			name: "Probe failure propagates",
			probe: func(ctx context.Context) (string, error) {
				return "", errors.New("unreachable")
			},
			expectedError: true,
		},
		{
			name: "Empty probe answer is rejected",
			probe: func(ctx context.Context) (string, error) {
				return "", nil
			},
			expectedError: true,
		},
		{
			name:          "No source at all",
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}
