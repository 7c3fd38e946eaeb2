package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailID uniquely identifies a scanned email. It is generated by the
// server at ingestion time.
type EmailID uuid.UUID

// String returns the canonical 36-character form of the identifier.
func (id EmailID) String() string { return uuid.UUID(id).String() }

// EmailStatus represents the scan lifecycle state of an email.
type EmailStatus string

const (
	// EmailStatusPending indicates the email has been accepted but not scanned yet.
	EmailStatusPending EmailStatus = "pending"
	// EmailStatusScanned indicates the scan completed and a verdict is recorded.
	EmailStatusScanned EmailStatus = "scanned"
	// EmailStatusFailed indicates the scan ended with an error.
	EmailStatusFailed EmailStatus = "failed"
)

// ValidEmailStatus reports whether s is one of the known statuses.
func ValidEmailStatus(s string) bool {
	switch EmailStatus(s) {
	case EmailStatusPending, EmailStatusScanned, EmailStatusFailed:
		return true
	}

	return false
}

// Email is one submitted email together with its scan verdict. Emails are
// immutable once stored; both timestamps coincide at creation time.
type Email struct {
	// ID is the server-generated identifier of this email.
	ID EmailID
	// CustomerID references the submitting customer, which may differ from
	// the From address.
	CustomerID CustomerID

	To      string
	From    string
	Subject string
	Body    string

	// Metadata is the opaque spamhammer blob supplied by the caller and
	// echoed back verbatim.
	Metadata string

	// Status is the scan lifecycle state; the synchronous pipeline always
	// stores "scanned".
	Status EmailStatus
	// Malicious is the verdict returned by the scan engine.
	Malicious bool
	// Domains is the deduplicated, first-seen-ordered list of domains
	// extracted from Body. Serialized only at the storage boundary.
	Domains []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DomainOccurrence records that a URL on Domain appeared in the body of
// one email. At most one occurrence exists per (domain, email) pair.
type DomainOccurrence struct {
	Domain  string
	EmailID EmailID
	// SenderID is the submitting customer, not the From address.
	SenderID CustomerID
	// ToAddress is the recipient of the owning email.
	ToAddress string
}

// IngestContents carries the required email fields of a scan request.
type IngestContents struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// IngestMetadata carries the opaque engine configuration of a scan request.
type IngestMetadata struct {
	SpamHammer string `json:"spamhammer"`
}

// IngestRequest is the body of a scan submission.
type IngestRequest struct {
	Contents IngestContents `json:"contents"`
	Metadata IngestMetadata `json:"metadata"`
}
