package domain

import (
	"strconv"
	"unicode/utf8"

	dErrors "medledger/pkg/domain-errors"
)

// Principal is the opaque identity of a patient, provider, or the
// administrator. The execution environment authenticates callers; this type
// only guarantees the identifier is well-formed.
//
// Usage: construct via ParsePrincipal at trust boundaries; direct casting
// bypasses validation.
type Principal string

// maxPrincipalLen bounds identifier length so stores never index unbounded
// caller-supplied text.
const maxPrincipalLen = 128

// ParsePrincipal constructs a Principal from external input.
//
// Errors: returns CodeBadRequest when the value is empty, oversized, or not
// valid UTF-8; no other errors are expected.
func ParsePrincipal(s string) (Principal, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "principal cannot be empty")
	}
	if len(s) > maxPrincipalLen {
		return "", dErrors.New(dErrors.CodeBadRequest, "principal exceeds maximum length")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeBadRequest, "principal must be valid UTF-8")
	}
	return Principal(s), nil
}

func (p Principal) String() string { return string(p) }

// ConsentID is the sequential identifier of a consent grant. IDs start at 1;
// zero is the sentinel for audit entries not tied to a specific grant.
type ConsentID uint64

// SentinelConsentID marks audit entries that reference no single grant, such
// as report generation.
const SentinelConsentID ConsentID = 0

// ParseConsentID constructs a ConsentID from external input.
//
// Errors: returns CodeBadRequest when the value is not a positive integer.
func ParseConsentID(s string) (ConsentID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "consent id must be a positive integer")
	}
	return ConsentID(n), nil
}

func (id ConsentID) String() string { return strconv.FormatUint(uint64(id), 10) }
