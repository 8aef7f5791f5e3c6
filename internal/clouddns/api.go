/*
 * API client interface
 *
 * Copyright 2025 Marco Confalonieri.
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
)

// apiClient is an abstraction of the REST API client. Listing calls return
// one page of results and the continuation token, which is empty on the
// final page.
type apiClient interface {
	// GetProject returns the project with its quota snapshot.
	GetProject(ctx context.Context) (*model.Project, error)
	// GetZones returns one page of managed zones.
	GetZones(ctx context.Context, opts model.ZoneListOpts) ([]model.ManagedZone, string, error)
	// GetZone returns a single managed zone.
	GetZone(ctx context.Context, name string) (*model.ManagedZone, error)
	// CreateZone creates a managed zone.
	CreateZone(ctx context.Context, zone model.ManagedZone) (*model.ManagedZone, error)
	// DeleteZone deletes a managed zone.
	DeleteZone(ctx context.Context, name string) error
	// GetRecordSets returns one page of record sets for a given zone.
	GetRecordSets(ctx context.Context, opts model.RecordSetListOpts) ([]model.ResourceRecordSet, string, error)
	// CreateChange submits a change request to a zone.
	CreateChange(ctx context.Context, zoneName string, change model.Change) (*model.Change, error)
	// GetChange returns a single change request.
	GetChange(ctx context.Context, zoneName, changeID string) (*model.Change, error)
	// GetChanges returns one page of the change history for a zone,
	// most-recent-first.
	GetChanges(ctx context.Context, opts model.ChangeListOpts) ([]model.Change, string, error)
}
