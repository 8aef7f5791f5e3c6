/*
 * API-independent types.
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
package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// ChangeStatus is the provider-side status of a change request.
type ChangeStatus string

const (
	// ChangeStatusPending marks a submitted change that has not been
	// served yet.
	ChangeStatusPending ChangeStatus = "PENDING"
	// ChangeStatusDone marks a fully served change.
	ChangeStatusDone ChangeStatus = "DONE"
)

// Quota key names returned by the provider for a project.
const (
	QuotaManagedZones             = "managedZones"
	QuotaResourceRecordsPerRrset  = "resourceRecordsPerRrset"
	QuotaRrsetsPerManagedZone     = "rrsetsPerManagedZone"
	QuotaRrsetAdditionsPerChange  = "rrsetAdditionsPerChange"
	QuotaRrsetDeletionsPerChange  = "rrsetDeletionsPerChange"
	QuotaTotalRrdataSizePerChange = "totalRrdataSizePerChange"
)

// Project represents the provider-side project that owns the managed zones.
type Project struct {
	ID    string
	Quota map[string]int
}

// ManagedZone represents a managed DNS zone.
type ManagedZone struct {
	Name        string
	DNSName     string
	Description string
	Created     time.Time
	NameServers []string
}

// ResourceRecordSet is an immutable snapshot of one name+type's data.
type ResourceRecordSet struct {
	Name    string
	Type    string
	TTL     int
	Rrdatas []string
}

// Key returns the (name,type) key that identifies a record set within a
// zone.
func (r ResourceRecordSet) Key() string {
	return fmt.Sprintf("%s|%s", r.Name, r.Type)
}

// Change represents a change request as known to the provider. The ID is
// empty until the change has been submitted.
type Change struct {
	ID        string
	Status    ChangeStatus
	StartTime time.Time
	Additions []ResourceRecordSet
	Deletions []ResourceRecordSet
}

// ListOpts contains the common options for paged results. The token is
// opaque and must be passed back verbatim.
type ListOpts struct {
	PageToken string
}

// ZoneListOpts contains the options for zone listing.
type ZoneListOpts struct {
	ListOpts
}

// RecordSetListOpts contains the options for record-set listing.
type RecordSetListOpts struct {
	ListOpts
	ZoneName string
	// Name restricts the listing to record sets with this DNS name.
	Name string
	// Type restricts the listing to this record type. Requires Name.
	Type string
}

// ChangeListOpts contains the options for change listing.
type ChangeListOpts struct {
	ListOpts
	ZoneName string
}

// supportedRecordTypes are the record types accepted in change requests.
var supportedRecordTypes = map[string]bool{
	"A": true, "AAAA": true, "CNAME": true, "MX": true,
	"NS": true, "PTR": true, "SOA": true, "SPF": true,
	"SRV": true, "TXT": true,
}

// IsSupportedRecordType checks if a record type can be submitted through a
// change request.
func IsSupportedRecordType(recordType string) bool {
	return supportedRecordTypes[recordType]
}

// NormalizeDNSName converts a DNS name to its fully-qualified ASCII form,
// as the provider stores internationalized names in punycode.
func NormalizeDNSName(name string) (string, error) {
	trimmed := strings.TrimSuffix(name, ".")
	ascii, err := idna.Lookup.ToASCII(trimmed)
	if err != nil {
		return "", fmt.Errorf("cannot normalize DNS name %q: %w", name, err)
	}
	return ascii + ".", nil
}
