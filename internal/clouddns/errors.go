/*
 * Errors - failure taxonomy surfaced to callers.
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
	"errors"
	"fmt"
)

// Kind classifies a failure. Every provider-side failure surfaces as
// exactly one kind; transport errors are passed through unwrapped.
type Kind string

const (
	// KindAuth marks bad or missing credentials.
	KindAuth Kind = "auth"
	// KindNotFound marks an absent project, zone or change.
	KindNotFound Kind = "not_found"
	// KindConflict marks a create on an existing name or a delete on a
	// non-empty zone.
	KindConflict Kind = "conflict"
	// KindValidation marks malformed record data or overlapping change
	// entries.
	KindValidation Kind = "validation"
	// KindQuotaExceeded marks a request over the project limits.
	KindQuotaExceeded Kind = "quota_exceeded"
	// KindState marks an invalid change-request transition.
	KindState Kind = "state"
)

// Error is the error type returned for classified failures.
type Error struct {
	// Kind of the failure.
	Kind Kind
	// Op is the operation that failed, e.g. "create_zone".
	Op string
	// Message is the provider or local failure message.
	Message string
	// StatusCode is the HTTP status for provider-side failures, zero for
	// local ones.
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (%s, status %d)", e.Op, e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Kind)
}

// newError creates a local (non-HTTP) classified error.
func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// isKind checks whether err is a classified error of the given kind.
func isKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsAuth returns true for credential failures.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsNotFound returns true when the requested object is absent.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsConflict returns true for conflicting create/delete requests.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

// IsValidation returns true for malformed or overlapping record data.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsQuotaExceeded returns true when a project limit was hit.
func IsQuotaExceeded(err error) bool { return isKind(err, KindQuotaExceeded) }

// IsState returns true for invalid change-request transitions.
func IsState(err error) bool { return isKind(err, KindState) }
