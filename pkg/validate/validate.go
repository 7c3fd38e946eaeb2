// Package validate holds the pure, stateless checks applied to inbound
// identifiers, addresses, timestamps and scan requests. Every function
// answers yes/no; callers decide how to surface a rejection.
package validate

import (
	"regexp"
	"time"

	"spamoverflow/pkg/domain"

	"github.com/google/uuid"
)

// addressPattern is a syntactic filter only: local@domain.tld with at
// least one dot in the domain and a final label of 2+ letters. No DNS or
// MX lookups are performed.
var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Identifier reports whether s is a canonical 36-character UUIDv4 string.
// Both customer and email identifiers use this format.
func Identifier(s string) bool {
	if len(s) != 36 {
		return false
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}

	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// Address reports whether s looks like a deliverable email address.
func Address(s string) bool {
	return addressPattern.MatchString(s)
}

// Timestamp reports whether s parses as an RFC 3339 date-time with an
// explicit offset (a trailing Z counts as +00:00).
func Timestamp(s string) bool {
	_, err := ParseTimestamp(s)

	return err == nil
}

// ParseTimestamp parses an RFC 3339 date-time with offset.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s) //nolint: wrapcheck
}

// IngestRequest reports whether req has every mandatory field present and
// non-empty, and syntactically valid to/from addresses. A malformed shape
// yields false, never a panic.
func IngestRequest(req *domain.IngestRequest) bool {
	if req == nil {
		return false
	}
	c := req.Contents
	if c.To == "" || c.From == "" || c.Subject == "" || c.Body == "" {
		return false
	}
	if req.Metadata.SpamHammer == "" {
		return false
	}

	return Address(c.To) && Address(c.From)
}
