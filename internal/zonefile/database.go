/*
 * Database - bridge between record sets and zonefile text.
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
package zonefile

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"clouddns-client/internal/clouddns/model"
)

// Splitter for rdata components.
var splitter = regexp.MustCompile(`\s+`)

// Parse reads a BIND master file and groups its records into record sets
// keyed by (name,type), ready for submission as one change request. Record
// order within a set follows the file.
func Parse(r io.Reader, zoneName string) ([]model.ResourceRecordSet, error) {
	origin := dns.Fqdn(zoneName)
	zp := dns.NewZoneParser(r, origin, zoneName+".zone")

	sets := map[string]*model.ResourceRecordSet{}
	var order []string
	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		hdr := rr.Header()
		recordType := dns.TypeToString[hdr.Rrtype]
		key := fmt.Sprintf("%s|%s", hdr.Name, recordType)
		// The record string is the header string followed by the rdata.
		rdata := strings.TrimSpace(strings.TrimPrefix(rr.String(), hdr.String()))
		set, found := sets[key]
		if !found {
			set = &model.ResourceRecordSet{
				Name: hdr.Name,
				Type: recordType,
				TTL:  int(hdr.Ttl),
			}
			sets[key] = set
			order = append(order, key)
		}
		set.Rrdatas = append(set.Rrdatas, rdata)
	}
	if err := zp.Err(); err != nil {
		return nil, fmt.Errorf("cannot import zone %s: %w", zoneName, err)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("cannot import zone %s: %w", zoneName, errors.New("cannot read records"))
	}

	rrsets := make([]model.ResourceRecordSet, len(order))
	for i, key := range order {
		rrsets[i] = *sets[key]
	}
	return rrsets, nil
}

// bumpSOASerial rewrites the serial field of a SOA rdata. Serials in the
// conventional date+version form advance by their own rules; any other
// serial is incremented numerically.
func bumpSOASerial(rdata string) (string, error) {
	fields := splitter.Split(strings.TrimSpace(rdata), -1)
	if len(fields) != 7 {
		return "", fmt.Errorf("SOA rdata %q does not have 7 fields", rdata)
	}
	serial := fields[2]
	if sn, err := NewSOASerialNumber(serial); err == nil {
		if err := sn.Inc(); err != nil {
			return "", err
		}
		fields[2] = sn.String()
	} else {
		n, convErr := strconv.ParseUint(serial, 10, 32)
		if convErr != nil {
			return "", fmt.Errorf("cannot parse SOA serial %q: %w", serial, convErr)
		}
		fields[2] = strconv.FormatUint(n+1, 10)
	}
	return strings.Join(fields, " "), nil
}

// renderRecord renders one rdata entry of a record set as a master-file
// line, validating its format on the way.
func renderRecord(name string, ttl int, recordType, rdata string) (string, error) {
	rr, err := dns.NewRR(fmt.Sprintf("%s %d IN %s %s", name, ttl, recordType, rdata))
	if err != nil {
		return "", fmt.Errorf("cannot render %s record %s: %w", recordType, name, err)
	}
	return rr.String(), nil
}

// Export renders the zone's record sets as zonefile text. The SOA record
// set, when present, comes first with its serial number bumped; the
// remaining sets follow sorted by name and type.
func Export(zoneName string, rrsets []model.ResourceRecordSet, defaultTTL int) (string, error) {
	origin := dns.Fqdn(zoneName)

	var soa *model.ResourceRecordSet
	rest := make([]model.ResourceRecordSet, 0, len(rrsets))
	for i := range rrsets {
		if rrsets[i].Type == "SOA" {
			if soa != nil {
				return "", fmt.Errorf("cannot export zone %s: more than one SOA record set", zoneName)
			}
			soa = &rrsets[i]
			continue
		}
		rest = append(rest, rrsets[i])
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].Name != rest[j].Name {
			return rest[i].Name < rest[j].Name
		}
		return rest[i].Type < rest[j].Type
	})

	ttl := defaultTTL
	if ttl <= 0 && soa != nil {
		ttl = soa.TTL
	}

	var zoneBuilder strings.Builder
	fmt.Fprint(&zoneBuilder, ";; Created by clouddns-client\n")
	fmt.Fprintf(&zoneBuilder, "$ORIGIN %s\n", origin)
	fmt.Fprintf(&zoneBuilder, "$TTL %d\n", ttl)

	if soa != nil {
		if len(soa.Rrdatas) != 1 {
			return "", fmt.Errorf("cannot export zone %s: found %d SOA records instead of 1",
				zoneName, len(soa.Rrdatas))
		}
		rdata, err := bumpSOASerial(soa.Rrdatas[0])
		if err != nil {
			return "", fmt.Errorf("cannot export zone %s: %w", zoneName, err)
		}
		line, err := renderRecord(soa.Name, soa.TTL, "SOA", rdata)
		if err != nil {
			return "", fmt.Errorf("cannot export zone %s: %w", zoneName, err)
		}
		fmt.Fprintf(&zoneBuilder, "%s\n", line)
	}

	for _, set := range rest {
		for _, rdata := range set.Rrdatas {
			line, err := renderRecord(set.Name, set.TTL, set.Type, rdata)
			if err != nil {
				return "", fmt.Errorf("cannot export zone %s: %w", zoneName, err)
			}
			fmt.Fprintf(&zoneBuilder, "%s\n", line)
		}
	}

	return zoneBuilder.String(), nil
}
