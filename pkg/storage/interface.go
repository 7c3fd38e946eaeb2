// Package storage defines the persistence interfaces the service relies
// on. It abstracts customer/email/report operations and transaction
// management so different backends can provide concrete implementations.
package storage

import "context"

// AllStorage is a composite interface with every domain-specific storage
// capability the application needs.
type AllStorage interface {
	CustomerStorage
	EmailStorage
	ReportStorage
}

// TxStorage is a storage handle operating inside a database transaction.
// It becomes unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a non-transactional handle with the ability to start
// transactions and to release its resources.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool. The instance must not
	// be used afterwards.
	Close() error

	// Begin starts a new transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with a transactional handle,
	// commits on success and rolls back when cb returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
