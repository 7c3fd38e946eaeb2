// Package ingest implements the ingestion pipeline: validation, customer
// upsert, domain extraction, external scan invocation and the final
// atomic write of the email with its domain occurrences.
package ingest

import (
	"context"
	"fmt"
	"time"

	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/logger"
	"spamoverflow/pkg/metrics"
	"spamoverflow/pkg/serrors"
	"spamoverflow/pkg/spamhammer"
	"spamoverflow/pkg/storage"
	"spamoverflow/pkg/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	// storage persists customers, emails and domain occurrences.
	storage storage.Storage
	// scanner computes the verdict for one email body.
	scanner spamhammer.Client
}

// New creates an Ingestor backed by the provided storage and scan client.
func New(storage storage.Storage, scanner spamhammer.Client) Ingestor {
	return &service{
		storage: storage,
		scanner: scanner,
	}
}

// Ingest runs the full pipeline for one request. The customer upsert is
// deliberately not transactional with the email write: customers are
// idempotent and are never rolled back once created, while the email and
// its domain occurrences are written as a single atomic unit only after
// the scan succeeded. The scan itself runs outside any transaction so
// concurrent ingestions never serialize on the engine round trip.
func (s *service) Ingest(ctx context.Context,
	customerID string,
	req domain.IngestRequest) (*domain.Email, error) {
	if !validate.Identifier(customerID) {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid customer id %q", customerID)
	}
	if !validate.IngestRequest(&req) {
		return nil, serrors.With(serrors.ErrBadRequest, "request body is missing mandatory fields")
	}

	cid := domain.CustomerID(uuid.MustParse(customerID))
	emailID := domain.EmailID(uuid.New())
	ctx = logger.WithFields(ctx,
		zap.String("customer_id", customerID),
		zap.String("email_id", emailID.String()))

	if err := s.storage.UpsertCustomer(ctx, domain.Customer{
		ID:    cid,
		Email: req.Contents.From,
	}); err != nil {
		return nil, fmt.Errorf("could not ensure customer: %w", err)
	}

	occurrences, domains := ExtractDomains(req.Contents.Body, emailID, cid, req.Contents.To)

	start := time.Now()
	verdict, err := s.scanner.Scan(ctx, spamhammer.Request{
		ID:       emailID.String(),
		Content:  req.Contents.Body,
		Metadata: req.Metadata.SpamHammer,
	})
	metrics.ScanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScansFailed.Inc()
		logger.Error(ctx, "scan engine invocation failed", zap.Error(err))

		return nil, fmt.Errorf("could not scan email: %w", err)
	}

	now := time.Now().UTC()
	email := domain.Email{
		ID:         emailID,
		CustomerID: cid,
		To:         req.Contents.To,
		From:       req.Contents.From,
		Subject:    req.Contents.Subject,
		Body:       req.Contents.Body,
		Metadata:   req.Metadata.SpamHammer,
		Status:     domain.EmailStatusScanned,
		Malicious:  verdict.Malicious,
		Domains:    domains,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var stored *domain.Email
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreEmail(ctx, email, occurrences)
		if err != nil {
			return err
		}
		stored = res

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not persist email: %w", err)
	}

	metrics.EmailsIngested.WithLabelValues(verdictLabel(verdict.Malicious)).Inc()
	logger.Info(ctx, "email ingested",
		zap.Bool("malicious", verdict.Malicious),
		zap.Int("domains", len(domains)))

	return stored, nil
}

func verdictLabel(malicious bool) string {
	if malicious {
		return "malicious"
	}

	return "benign"
}
