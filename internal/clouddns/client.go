/*
 * Client - facade over the managed DNS provider.
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

	"clouddns-client/internal/clouddns/model"

	log "github.com/sirupsen/logrus"
)

// Client holds the resolved project identity and the API transport. It
// instantiates zone handles; all mutations go through them.
type Client struct {
	project string
	api     apiClient
}

// NewClient creates a client for the given project. The project id must
// already be resolved (see ResolveProject); the client never infers it.
func NewClient(config *Configuration, project string) *Client {
	var logLevel log.Level
	if config.Debug {
		logLevel = log.DebugLevel
	} else {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)

	return &Client{
		project: project,
		api:     newRESTClient(config, project),
	}
}

// Project returns the project id the client operates on.
func (c *Client) Project() string {
	return c.project
}

// Quotas fetches the current project quota limits.
func (c *Client) Quotas(ctx context.Context) (map[string]int, error) {
	project, err := c.api.GetProject(ctx)
	if err != nil {
		return nil, err
	}
	return project.Quota, nil
}

// Zone constructs a local, unsaved zone handle. No network call is made;
// the remote zone is created with Create or checked with Exists.
func (c *Client) Zone(name, dnsName, description string) *ManagedZone {
	return &ManagedZone{
		client: c,
		info: model.ManagedZone{
			Name:        name,
			DNSName:     dnsName,
			Description: description,
		},
	}
}

// ListZones returns one page of the project's managed zones and the
// continuation token, which is empty on the last page.
func (c *Client) ListZones(ctx context.Context, pageToken string) ([]*ManagedZone, string, error) {
	opts := model.ZoneListOpts{
		ListOpts: model.ListOpts{PageToken: pageToken},
	}
	zones, next, err := c.api.GetZones(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	handles := make([]*ManagedZone, len(zones))
	for i, z := range zones {
		handles[i] = &ManagedZone{client: c, info: z}
	}
	return handles, next, nil
}

// AllZones follows the pagination protocol until exhaustion and returns
// every managed zone of the project.
func (c *Client) AllZones(ctx context.Context) ([]*ManagedZone, error) {
	return CollectAll(ctx, func(ctx context.Context, token string) (Page[*ManagedZone], error) {
		zones, next, err := c.ListZones(ctx, token)
		if err != nil {
			return Page[*ManagedZone]{}, err
		}
		return Page[*ManagedZone]{Items: zones, NextPageToken: next}, nil
	})
}
