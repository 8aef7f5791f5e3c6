/*
 * Common test routines for the clouddns package.
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
)

// testTime is a time used in fixtures.
var testTime = time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)

// testQuota is the quota snapshot used in fixtures.
var testQuota = map[string]int{
	model.QuotaManagedZones:             100,
	model.QuotaResourceRecordsPerRrset:  50,
	model.QuotaRrsetsPerManagedZone:     10000,
	model.QuotaRrsetAdditionsPerChange:  100,
	model.QuotaRrsetDeletionsPerChange:  100,
	model.QuotaTotalRrdataSizePerChange: 10000,
}

// zonesPage is one scripted page of a zone listing.
type zonesPage struct {
	zones []model.ManagedZone
	next  string
}

// rrsetsPage is one scripted page of a record-set listing.
type rrsetsPage struct {
	rrsets []model.ResourceRecordSet
	next   string
}

// changesPage is one scripted page of a change listing.
type changesPage struct {
	changes []model.Change
	next    string
}

// mockState keeps track of which methods were called.
type mockState struct {
	GetProjectCalled    bool
	GetZonesCalled      int
	GetZoneCalled       bool
	CreateZoneCalled    bool
	DeleteZoneCalled    bool
	GetRecordSetsCalled int
	CreateChangeCalled  bool
	GetChangeCalled     int
	GetChangesCalled    int
}

// mockClient simulates the REST API client. Paged answers are keyed by the
// incoming page token; the empty key scripts the first page.
type mockClient struct {
	state mockState

	project    *model.Project
	projectErr error

	zonePages map[string]zonesPage
	zonesErr  error

	zone    *model.ManagedZone
	zoneErr error

	createdZone   *model.ManagedZone
	createZoneErr error

	deleteZoneErr error

	rrsetPages     map[string]rrsetsPage
	rrsetsErr      error
	lastRRSetOpts  model.RecordSetListOpts
	rrsetPageCalls []string

	createdChange   *model.Change
	createChangeErr error
	lastChange      model.Change

	changeSeq []model.Change
	changeErr error

	changePages map[string]changesPage
	changesErr  error
}

// GetState returns the internal state.
func (m mockClient) GetState() mockState {
	return m.state
}

// GetProject simulates a request for the project.
func (m *mockClient) GetProject(ctx context.Context) (*model.Project, error) {
	m.state.GetProjectCalled = true
	return m.project, m.projectErr
}

// GetZones simulates a request for one page of zones.
func (m *mockClient) GetZones(ctx context.Context, opts model.ZoneListOpts) ([]model.ManagedZone, string, error) {
	m.state.GetZonesCalled++
	if m.zonesErr != nil {
		return nil, "", m.zonesErr
	}
	page := m.zonePages[opts.PageToken]
	return page.zones, page.next, nil
}

// GetZone simulates a request for a single zone.
func (m *mockClient) GetZone(ctx context.Context, name string) (*model.ManagedZone, error) {
	m.state.GetZoneCalled = true
	return m.zone, m.zoneErr
}

// CreateZone simulates a zone creation request.
func (m *mockClient) CreateZone(ctx context.Context, zone model.ManagedZone) (*model.ManagedZone, error) {
	m.state.CreateZoneCalled = true
	return m.createdZone, m.createZoneErr
}

// DeleteZone simulates a zone deletion request.
func (m *mockClient) DeleteZone(ctx context.Context, name string) error {
	m.state.DeleteZoneCalled = true
	return m.deleteZoneErr
}

// GetRecordSets simulates a request for one page of record sets.
func (m *mockClient) GetRecordSets(ctx context.Context, opts model.RecordSetListOpts) ([]model.ResourceRecordSet, string, error) {
	m.state.GetRecordSetsCalled++
	m.lastRRSetOpts = opts
	m.rrsetPageCalls = append(m.rrsetPageCalls, opts.PageToken)
	if m.rrsetsErr != nil {
		return nil, "", m.rrsetsErr
	}
	page := m.rrsetPages[opts.PageToken]
	return page.rrsets, page.next, nil
}

// CreateChange simulates a change submission.
func (m *mockClient) CreateChange(ctx context.Context, zoneName string, change model.Change) (*model.Change, error) {
	m.state.CreateChangeCalled = true
	m.lastChange = change
	return m.createdChange, m.createChangeErr
}

// GetChange simulates a request for a single change. Scripted answers are
// consumed in order; the last one repeats.
func (m *mockClient) GetChange(ctx context.Context, zoneName, changeID string) (*model.Change, error) {
	m.state.GetChangeCalled++
	if m.changeErr != nil {
		return nil, m.changeErr
	}
	if len(m.changeSeq) == 0 {
		return nil, &Error{Kind: KindNotFound, Op: actGetChange, Message: "no scripted answer"}
	}
	change := m.changeSeq[0]
	if len(m.changeSeq) > 1 {
		m.changeSeq = m.changeSeq[1:]
	}
	return &change, nil
}

// GetChanges simulates a request for one page of the change history.
func (m *mockClient) GetChanges(ctx context.Context, opts model.ChangeListOpts) ([]model.Change, string, error) {
	m.state.GetChangesCalled++
	if m.changesErr != nil {
		return nil, "", m.changesErr
	}
	page := m.changePages[opts.PageToken]
	return page.changes, page.next, nil
}

// newTestClient builds a client wired to the given mock.
func newTestClient(api apiClient) *Client {
	return &Client{
		project: "test-project",
		api:     api,
	}
}

// buildTestRRSet builds a record set according to parameters.
func buildTestRRSet(name, recordType string, ttl int, rrdatas ...string) model.ResourceRecordSet {
	return model.ResourceRecordSet{
		Name:    name,
		Type:    recordType,
		TTL:     ttl,
		Rrdatas: rrdatas,
	}
}

// buildTestZones builds some test zones.
func buildTestZones() []model.ManagedZone {
	return []model.ManagedZone{
		{
			Name:        "alpha",
			DNSName:     "alpha.com.",
			Created:     testTime,
			NameServers: []string{"ns1.clouddns.io.", "ns2.clouddns.io."},
		},
		{
			Name:        "beta",
			DNSName:     "beta.com.",
			Created:     testTime,
			NameServers: []string{"ns1.clouddns.io.", "ns2.clouddns.io."},
		},
	}
}
