/*
 * ChangeRequest - change-request lifecycle.
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
	"clouddns-client/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// ChangeStatusUnsubmitted is the local status of a change request that was
// constructed but not submitted yet. The provider only ever reports
// PENDING or DONE.
const ChangeStatusUnsubmitted model.ChangeStatus = "UNSUBMITTED"

// ChangeRequest is an atomic batch of record-set additions and deletions
// for one zone. Its lifecycle is UNSUBMITTED, then PENDING after Begin,
// then DONE once the provider has served the change; there are no other
// transitions. A submitted request is immutable except for the fields
// refreshed by Reload.
type ChangeRequest struct {
	zone *ManagedZone
	info model.Change
	// tracked tells whether this request holds a unit of the
	// pending-changes gauge.
	tracked bool
}

// ID returns the provider-assigned id, empty before submission.
func (r *ChangeRequest) ID() string {
	return r.info.ID
}

// Status returns the current status of the change request.
func (r *ChangeRequest) Status() model.ChangeStatus {
	if !r.submitted() {
		return ChangeStatusUnsubmitted
	}
	return r.info.Status
}

// StartTime returns the submission time assigned by the provider.
func (r *ChangeRequest) StartTime() time.Time {
	return r.info.StartTime
}

// Additions returns the record sets added by the change.
func (r *ChangeRequest) Additions() []model.ResourceRecordSet {
	return r.info.Additions
}

// Deletions returns the record sets deleted by the change.
func (r *ChangeRequest) Deletions() []model.ResourceRecordSet {
	return r.info.Deletions
}

// Done returns true once the provider has served the change.
func (r *ChangeRequest) Done() bool {
	return r.submitted() && r.info.Status == model.ChangeStatusDone
}

// submitted tells whether the request holds a provider-assigned id.
func (r *ChangeRequest) submitted() bool {
	return r.info.ID != ""
}

// checkRecordSets validates one side of the change. TTLs are only checked
// on additions: deletions must quote the existing record set verbatim,
// whatever it holds.
func checkRecordSets(rrsets []model.ResourceRecordSet, side string, checkTTL bool) error {
	seen := map[string]bool{}
	for _, rs := range rrsets {
		if !model.IsSupportedRecordType(rs.Type) {
			return newError(KindValidation, actCreateChange,
				"unsupported record type %q for %s of %s", rs.Type, side, rs.Name)
		}
		if len(rs.Rrdatas) == 0 {
			return newError(KindValidation, actCreateChange,
				"no rrdata given for %s of %s %s", side, rs.Type, rs.Name)
		}
		if checkTTL && rs.TTL <= 0 {
			return newError(KindValidation, actCreateChange,
				"non-positive ttl %d for %s of %s %s", rs.TTL, side, rs.Type, rs.Name)
		}
		key := rs.Key()
		if seen[key] {
			return newError(KindValidation, actCreateChange,
				"duplicate (name,type) pair %s %s in %s", rs.Name, rs.Type, side)
		}
		seen[key] = true
	}
	return nil
}

// validate checks the change locally before submission. The same
// (name,type) appearing in both additions and deletions is an atomic
// replace and is accepted; duplicates within one side are rejected.
func (r *ChangeRequest) validate() error {
	if len(r.info.Additions) == 0 && len(r.info.Deletions) == 0 {
		return newError(KindValidation, actCreateChange, "change contains no additions and no deletions")
	}
	if err := checkRecordSets(r.info.Additions, "additions", true); err != nil {
		return err
	}
	return checkRecordSets(r.info.Deletions, "deletions", false)
}

// Begin submits the change atomically. Valid only from UNSUBMITTED. The
// provider assigns the id and the initial status, which is typically
// PENDING but may be DONE immediately for trivial changes.
func (r *ChangeRequest) Begin(ctx context.Context) error {
	if r.submitted() {
		return newError(KindState, actCreateChange,
			"change request %s was already submitted", r.info.ID)
	}
	if err := r.validate(); err != nil {
		return err
	}

	log.Infof("Submitting change with %d additions and %d deletions to zone [%s]",
		len(r.info.Additions), len(r.info.Deletions), r.zone.Name())
	created, err := r.zone.client.api.CreateChange(ctx, r.zone.Name(), r.info)
	if err != nil {
		return err
	}
	r.info.ID = created.ID
	r.info.Status = created.Status
	r.info.StartTime = created.StartTime
	if r.info.Status == model.ChangeStatusPending {
		metrics.GetInstance().IncPendingChanges()
		r.tracked = true
	}

	log.WithFields(log.Fields{
		"change": r.info.ID,
		"status": r.info.Status,
	}).Debug("Change request submitted")
	return nil
}

// Reload re-fetches status and timestamps from the provider. Valid only
// once submitted; it is the sole way the status advances from PENDING to
// DONE. No polling loop is run here, see WaitUntilDone.
func (r *ChangeRequest) Reload(ctx context.Context) error {
	if !r.submitted() {
		return newError(KindState, actGetChange,
			"cannot reload a change request that was not submitted")
	}
	change, err := r.zone.client.api.GetChange(ctx, r.zone.Name(), r.info.ID)
	if err != nil {
		return err
	}
	r.info.Status = change.Status
	r.info.StartTime = change.StartTime
	if r.tracked && r.info.Status != model.ChangeStatusPending {
		metrics.GetInstance().DecPendingChanges()
		r.tracked = false
	}
	return nil
}
