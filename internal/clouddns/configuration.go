/*
 * Configuration - client configuration and project resolution.
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
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

// Configuration contains the client's configuration.
type Configuration struct {
	// API token
	APIToken string `env:"CLOUDDNS_API_TOKEN,required"`
	// Base URL of the REST endpoint
	APIEndpointURL string `env:"CLOUDDNS_API_URL" envDefault:"https://api.clouddns.io/v1"`
	// Project id; when empty it is resolved through ResolveProject
	Project string `env:"CLOUDDNS_PROJECT"`
	// Enable debugging logs
	Debug bool `env:"CLOUDDNS_DEBUG" envDefault:"false"`
	// Default TTL in seconds for exported zonefiles; zero means the SOA TTL
	DefaultTTL int `env:"CLOUDDNS_DEFAULT_TTL" envDefault:"0"`
	// Request timeout in milliseconds
	RequestTimeout int `env:"REQUEST_TIMEOUT" envDefault:"30000"`
	// URL of the platform metadata service answering the project id
	MetadataURL string `env:"METADATA_URL" envDefault:"http://169.254.169.254/metadata/v1/project-id"`
	// Metadata probe timeout in milliseconds
	MetadataTimeout int `env:"METADATA_TIMEOUT" envDefault:"2000"`
}

// NewConfiguration creates a new configuration object populated from the
// environment.
func NewConfiguration() (*Configuration, error) {
	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetRequestTimeout returns the request timeout.
func (c Configuration) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// ProjectProbe queries the platform metadata service for a project id.
type ProjectProbe func(ctx context.Context) (string, error)

// MetadataProbe returns a probe that asks the metadata service configured
// in MetadataURL.
func (c Configuration) MetadataProbe() ProjectProbe {
	metadataURL := c.MetadataURL
	timeout := time.Duration(c.MetadataTimeout) * time.Millisecond
	return func(ctx context.Context) (string, error) {
		client := &http.Client{Timeout: timeout}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
		if err != nil {
			return "", fmt.Errorf("cannot build metadata request: %w", err)
		}
		req.Header.Set("Metadata-Flavor", "CloudDNS")
		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("metadata service unreachable: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("metadata service returned status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("cannot read metadata response: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

// ResolveProject picks the project id once at startup, with precedence:
// explicit argument, environment-provided configuration, platform metadata.
// The result is injected into the client; core logic never looks the
// project up ambiently.
func ResolveProject(ctx context.Context, explicit string, config *Configuration, probe ProjectProbe) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if config.Project != "" {
		return config.Project, nil
	}
	if probe == nil {
		return "", fmt.Errorf("no project id given and no metadata probe available")
	}
	project, err := probe(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot infer project id: %w", err)
	}
	if project == "" {
		return "", fmt.Errorf("metadata service returned an empty project id")
	}
	return project, nil
}
