/*
 * SOASerialNumber - SOA serial number manipulation.
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
	"strconv"
	"time"
)

const (
	// format of the date part of the serial number
	fmtSOADate = "20060102"
	// highest version number that fits the two-digit suffix
	maxSOAVersion = 99
)

// SOASerialNumber represents a SOA serial number in the conventional
// YYYYMMDDnn form.
type SOASerialNumber struct {
	date    time.Time
	version int
}

// NewSOASerialNumber creates a serial number from a string.
func NewSOASerialNumber(sn string) (*SOASerialNumber, error) {
	if len(sn) != 10 {
		return nil, fmt.Errorf("serial number %q is unsupported", sn)
	}
	date, err := time.Parse(fmtSOADate, sn[:8])
	if err != nil {
		return nil, fmt.Errorf("cannot parse date in serial number %q", sn)
	}
	if date.After(time.Now()) {
		return nil, fmt.Errorf("unexpected date part %q is in the future", sn[:8])
	}
	version, err := strconv.Atoi(sn[8:])
	if err != nil {
		return nil, fmt.Errorf("cannot parse version in serial number %q: %w", sn, err)
	}
	if version < 0 || version > maxSOAVersion {
		return nil, fmt.Errorf("version %d is not supported", version)
	}
	return &SOASerialNumber{
		date:    date,
		version: version,
	}, nil
}

// CreateSOASerialNumber creates a new serial number for today.
func CreateSOASerialNumber() *SOASerialNumber {
	return &SOASerialNumber{
		date: time.Now(),
	}
}

// Inc increments the version number. Crossing to a new day resets the
// version to zero.
func (s *SOASerialNumber) Inc() error {
	today := time.Now().Format(fmtSOADate)
	if today != s.date.Format(fmtSOADate) {
		s.date = time.Now()
		s.version = 0
		return nil
	}
	if s.version == maxSOAVersion {
		return errors.New("cannot increment version as it is 99")
	}
	s.version++
	return nil
}

// String returns a string representation of the serial number.
func (s SOASerialNumber) String() string {
	return fmt.Sprintf("%s%02d", s.date.Format(fmtSOADate), s.version)
}

// Uint32 returns a uint32 representation of the serial number.
func (s SOASerialNumber) Uint32() uint32 {
	n, err := strconv.ParseUint(s.String(), 10, 32)
	if err != nil {
		panic(fmt.Sprintf("wrong internal conversion on %q: %v", s.String(), err))
	}
	return uint32(n)
}
