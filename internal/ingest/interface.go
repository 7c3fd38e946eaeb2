package ingest

import (
	"context"

	"spamoverflow/pkg/domain"
)

// Ingestor turns one inbound scan request into one persisted email. The
// customer identifier arrives as the raw path segment and is validated by
// the implementation.
type Ingestor interface {
	Ingest(ctx context.Context, customerID string, req domain.IngestRequest) (*domain.Email, error)
}
