/*
 * ManagedZone - zone handle operations.
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
	"time"

	"clouddns-client/internal/clouddns/model"

	log "github.com/sirupsen/logrus"
)

// ManagedZone is a handle on one managed DNS zone. Handles are created
// locally through Client.Zone or filled from listing calls; sharing one
// handle across goroutines requires external synchronization.
type ManagedZone struct {
	client *Client
	info   model.ManagedZone
}

// Name returns the zone name, unique within the project.
func (z *ManagedZone) Name() string {
	return z.info.Name
}

// DNSName returns the DNS name suffix served by the zone.
func (z *ManagedZone) DNSName() string {
	return z.info.DNSName
}

// Description returns the zone description.
func (z *ManagedZone) Description() string {
	return z.info.Description
}

// Created returns the creation timestamp assigned by the provider. It is
// zero for handles that were never saved or reloaded.
func (z *ManagedZone) Created() time.Time {
	return z.info.Created
}

// NameServers returns the authoritative name servers assigned by the
// provider.
func (z *ManagedZone) NameServers() []string {
	return z.info.NameServers
}

// Create submits the zone definition. The provider answers with a conflict
// when the name already exists in the project; callers wanting idempotence
// must check Exists first. On success the handle is updated with the
// provider-assigned fields.
func (z *ManagedZone) Create(ctx context.Context) error {
	dnsName, err := model.NormalizeDNSName(z.info.DNSName)
	if err != nil {
		return newError(KindValidation, actCreateZone, "%v", err)
	}
	definition := z.info
	definition.DNSName = dnsName

	log.Infof("Creating zone [%s] for DNS name [%s]", z.info.Name, dnsName)
	created, err := z.client.api.CreateZone(ctx, definition)
	if err != nil {
		return err
	}
	z.info = *created
	return nil
}

// Exists probes the provider for the zone. A not-found answer maps to
// (false, nil); every other failure propagates. Zone existence is
// eventually consistent with the remote provider.
func (z *ManagedZone) Exists(ctx context.Context) (bool, error) {
	_, err := z.client.api.GetZone(ctx, z.info.Name)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the zone. The provider answers with a conflict while the
// zone still holds record sets other than the mandatory SOA/NS pair.
func (z *ManagedZone) Delete(ctx context.Context) error {
	log.Infof("Deleting zone [%s]", z.info.Name)
	return z.client.api.DeleteZone(ctx, z.info.Name)
}

// RecordSetFilter restricts a record-set listing. Type requires Name.
type RecordSetFilter struct {
	Name string
	Type string
}

// ListResourceRecordSets returns one page of the zone's record sets and
// the continuation token, which is empty on the last page.
func (z *ManagedZone) ListResourceRecordSets(ctx context.Context, pageToken string, filter *RecordSetFilter) ([]model.ResourceRecordSet, string, error) {
	opts := model.RecordSetListOpts{
		ListOpts: model.ListOpts{PageToken: pageToken},
		ZoneName: z.info.Name,
	}
	if filter != nil {
		if filter.Type != "" && filter.Name == "" {
			return nil, "", newError(KindValidation, actGetRRSets,
				"a type filter requires a name filter")
		}
		opts.Name = filter.Name
		opts.Type = filter.Type
	}
	return z.client.api.GetRecordSets(ctx, opts)
}

// AllResourceRecordSets follows the pagination protocol until exhaustion
// and returns every record set of the zone.
func (z *ManagedZone) AllResourceRecordSets(ctx context.Context) ([]model.ResourceRecordSet, error) {
	return CollectAll(ctx, func(ctx context.Context, token string) (Page[model.ResourceRecordSet], error) {
		rrsets, next, err := z.ListResourceRecordSets(ctx, token, nil)
		if err != nil {
			return Page[model.ResourceRecordSet]{}, err
		}
		return Page[model.ResourceRecordSet]{Items: rrsets, NextPageToken: next}, nil
	})
}

// NewChange constructs an unsubmitted change request for the zone. No
// network effect takes place until Begin.
func (z *ManagedZone) NewChange(additions, deletions []model.ResourceRecordSet) *ChangeRequest {
	return &ChangeRequest{
		zone: z,
		info: model.Change{
			Additions: additions,
			Deletions: deletions,
		},
	}
}

// Change returns a handle on an already-submitted change request. The
// handle starts as PENDING; Reload fetches the actual status.
func (z *ManagedZone) Change(id string) *ChangeRequest {
	return &ChangeRequest{
		zone: z,
		info: model.Change{
			ID:     id,
			Status: model.ChangeStatusPending,
		},
	}
}

// ListChanges returns one page of the zone's change history,
// most-recent-first by provider convention.
func (z *ManagedZone) ListChanges(ctx context.Context, pageToken string) ([]*ChangeRequest, string, error) {
	opts := model.ChangeListOpts{
		ListOpts: model.ListOpts{PageToken: pageToken},
		ZoneName: z.info.Name,
	}
	changes, next, err := z.client.api.GetChanges(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	requests := make([]*ChangeRequest, len(changes))
	for i, ch := range changes {
		requests[i] = &ChangeRequest{zone: z, info: ch}
	}
	return requests, next, nil
}
