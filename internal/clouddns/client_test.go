/*
 * Client - unit tests
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
	"testing"

	"clouddns-client/internal/clouddns/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_Client_Quotas tests that the quota snapshot carries exactly the six
// documented keys with non-negative limits.
func Test_Client_Quotas(t *testing.T) {
	mock := &mockClient{
		project: &model.Project{ID: "test-project", Quota: testQuota},
	}
	client := newTestClient(mock)

	quotas, err := client.Quotas(context.Background())
	require.NoError(t, err)
	assert.True(t, mock.GetState().GetProjectCalled)

	expectedKeys := []string{
		model.QuotaManagedZones,
		model.QuotaResourceRecordsPerRrset,
		model.QuotaRrsetsPerManagedZone,
		model.QuotaRrsetAdditionsPerChange,
		model.QuotaRrsetDeletionsPerChange,
		model.QuotaTotalRrdataSizePerChange,
	}
	assert.Len(t, quotas, len(expectedKeys))
	for _, key := range expectedKeys {
		limit, ok := quotas[key]
		assert.True(t, ok, "missing quota key %s", key)
		assert.GreaterOrEqual(t, limit, 0)
	}
}

// Test_Client_Quotas_errors tests that provider failures propagate with
// their kind.
func Test_Client_Quotas_errors(t *testing.T) {
	type testCase struct {
		name      string
		err       error
		predicate func(error) bool
	}

	run := func(t *testing.T, tc testCase) {
		mock := &mockClient{projectErr: tc.err}
		client := newTestClient(mock)
		quotas, err := client.Quotas(context.Background())
		assert.Nil(t, quotas)
		assert.True(t, tc.predicate(err))
	}

	testCases := []testCase{
		{
			name:      "Invalid credentials",
			err:       newError(KindAuth, actGetProject, "bad token"),
			predicate: IsAuth,
		},
		{
			name:      "Unknown project",
			err:       newError(KindNotFound, actGetProject, "no such project"),
			predicate: IsNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

// Test_Client_Zone tests that zone handles are constructed locally without
// any network call.
func Test_Client_Zone(t *testing.T) {
	mock := &mockClient{}
	client := newTestClient(mock)

	zone := client.Zone("acme-co", "example.com", "ACME zone")
	assert.Equal(t, "acme-co", zone.Name())
	assert.Equal(t, "example.com", zone.DNSName())
	assert.Equal(t, "ACME zone", zone.Description())
	assert.True(t, zone.Created().IsZero())
	assert.Empty(t, zone.NameServers())
	assert.Equal(t, mockState{}, mock.GetState())
}

// Test_Client_ListZones tests that one call returns exactly one page.
func Test_Client_ListZones(t *testing.T) {
	zones := buildTestZones()
	mock := &mockClient{
		zonePages: map[string]zonesPage{
			"":   {zones: zones[:1], next: "t1"},
			"t1": {zones: zones[1:]},
		},
	}
	client := newTestClient(mock)

	first, next, err := client.ListZones(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "alpha", first[0].Name())
	assert.Equal(t, "t1", next)
	assert.Equal(t, 1, mock.GetState().GetZonesCalled)

	second, next, err := client.ListZones(context.Background(), next)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "beta", second[0].Name())
	assert.Empty(t, next)
}

// Test_Client_AllZones tests that the pagination protocol is followed to
// exhaustion.
func Test_Client_AllZones(t *testing.T) {
	zones := buildTestZones()
	mock := &mockClient{
		zonePages: map[string]zonesPage{
			"":   {zones: zones[:1], next: "t1"},
			"t1": {zones: zones[1:]},
		},
	}
	client := newTestClient(mock)

	all, err := client.AllZones(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "beta", all[1].Name())
	assert.Equal(t, 2, mock.GetState().GetZonesCalled)
}
