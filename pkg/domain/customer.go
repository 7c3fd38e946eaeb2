package domain

import "github.com/google/uuid"

// CustomerID uniquely identifies a customer. Customers supply their own
// UUIDv4 identifiers; the service never generates one.
type CustomerID uuid.UUID

// String returns the canonical 36-character form of the identifier.
func (id CustomerID) String() string { return uuid.UUID(id).String() }

// Customer is an external party on whose behalf emails are submitted for
// scanning. It is created lazily the first time an unseen identifier is
// referenced, and is never updated or deleted afterwards.
type Customer struct {
	// ID is the client-supplied identifier.
	ID CustomerID `json:"id"`
	// Email is the address of the first sender observed for this customer.
	Email string `json:"email"`
}
