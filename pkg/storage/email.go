package storage

import (
	"context"
	"time"

	"spamoverflow/pkg/domain"
)

// EmailFilters is the set of optional, independently applicable filters
// for listing a customer's emails. All supplied filters combine with
// logical AND; zero values mean "not supplied".
type EmailFilters struct {
	// Start keeps emails created at or after this instant.
	Start *time.Time
	// End keeps emails created at or before this instant.
	End *time.Time
	// From keeps emails with this exact sender address.
	From string
	// To keeps emails with this exact recipient address.
	To string
	// Status keeps emails in this scan lifecycle state.
	Status domain.EmailStatus
	// OnlyMalicious keeps emails with a malicious verdict.
	OnlyMalicious bool
}

// CustomerStorage holds the customer operations.
type CustomerStorage interface {
	// UpsertCustomer inserts the customer if no row with its id exists and
	// is a no-op otherwise. Safe under concurrent calls with the same id:
	// no duplicate row is created and no uniqueness violation surfaces.
	UpsertCustomer(ctx context.Context, customer domain.Customer) error
}

// EmailStorage holds the email write and lookup operations.
type EmailStorage interface {
	// StoreEmail inserts the email row and all its domain occurrences in
	// the handle's transaction scope, returning the stored row. The
	// referenced customer must already exist.
	StoreEmail(ctx context.Context, email domain.Email, occurrences []domain.DomainOccurrence) (*domain.Email, error)
	// Emails returns the customer's emails matching the filters, ordered
	// by created_at ascending with id ascending as a tiebreak, limited and
	// offset for pagination.
	Emails(ctx context.Context,
		customerID domain.CustomerID,
		filters EmailFilters,
		limit uint,
		offset uint) ([]domain.Email, error)
	// EmailByID fetches one email scoped to the customer. Returns nil when
	// no such email exists.
	EmailByID(ctx context.Context, customerID domain.CustomerID, emailID domain.EmailID) (*domain.Email, error)
}

// ReportStorage holds the aggregate report queries. Each returns groups
// ordered by group key ascending for deterministic output.
type ReportStorage interface {
	// MaliciousSenders counts malicious emails grouped by sender address
	// across all customers. The report is global: the customer path
	// segment of the actors endpoint is deliberately not applied.
	MaliciousSenders(ctx context.Context) ([]domain.ReportEntry, error)
	// MaliciousDomains counts domain occurrences joined to malicious
	// emails submitted by the customer, grouped by domain.
	MaliciousDomains(ctx context.Context, customerID domain.CustomerID) ([]domain.ReportEntry, error)
	// MaliciousRecipients counts the customer's malicious emails grouped
	// by recipient address.
	MaliciousRecipients(ctx context.Context, customerID domain.CustomerID) ([]domain.ReportEntry, error)
}
