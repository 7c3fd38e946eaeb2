package query

import (
	"context"
	"fmt"
	"time"

	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/serrors"
	"spamoverflow/pkg/storage"
	"spamoverflow/pkg/validate"

	"github.com/google/uuid"
)

// Querier is the read-side API: listings, lookups and reports. Raw path
// identifiers are validated by the implementation before touching storage.
type Querier interface {
	ListEmails(ctx context.Context, customerID string, params ListParams) ([]domain.Email, error)
	Email(ctx context.Context, customerID string, emailID string) (*domain.Email, error)

	MaliciousSenders(ctx context.Context, customerID string) (*domain.Report, error)
	MaliciousDomains(ctx context.Context, customerID string) (*domain.Report, error)
	MaliciousRecipients(ctx context.Context, customerID string) (*domain.Report, error)
}

type service struct {
	storage storage.Storage
}

// New creates a Querier backed by the provided storage.
func New(storage storage.Storage) Querier {
	return &service{storage: storage}
}

func parseCustomerID(customerID string) (domain.CustomerID, error) {
	if !validate.Identifier(customerID) {
		return domain.CustomerID{}, serrors.With(serrors.ErrBadRequest, "invalid customer id %q", customerID)
	}

	return domain.CustomerID(uuid.MustParse(customerID)), nil
}

func (s *service) ListEmails(ctx context.Context, customerID string, params ListParams) ([]domain.Email, error) {
	cid, err := parseCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	filters, limit, offset, err := params.filters()
	if err != nil {
		return nil, err
	}

	emails, err := s.storage.Emails(ctx, cid, filters, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("could not list emails: %w", err)
	}

	return emails, nil
}

func (s *service) Email(ctx context.Context, customerID string, emailID string) (*domain.Email, error) {
	cid, err := parseCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if !validate.Identifier(emailID) {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid email id %q", emailID)
	}

	email, err := s.storage.EmailByID(ctx, cid, domain.EmailID(uuid.MustParse(emailID)))
	if err != nil {
		return nil, fmt.Errorf("could not fetch email: %w", err)
	}
	if email == nil {
		return nil, serrors.With(serrors.ErrNotFound, "email %s not found", emailID)
	}

	return email, nil
}

// MaliciousSenders aggregates malicious emails by sender address across
// all customers. The customer identifier is validated for format but does
// not scope the aggregation.
func (s *service) MaliciousSenders(ctx context.Context, customerID string) (*domain.Report, error) {
	if _, err := parseCustomerID(customerID); err != nil {
		return nil, err
	}

	entries, err := s.storage.MaliciousSenders(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not build senders report: %w", err)
	}

	return newReport(entries), nil
}

func (s *service) MaliciousDomains(ctx context.Context, customerID string) (*domain.Report, error) {
	cid, err := parseCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.MaliciousDomains(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("could not build domains report: %w", err)
	}

	return newReport(entries), nil
}

func (s *service) MaliciousRecipients(ctx context.Context, customerID string) (*domain.Report, error) {
	cid, err := parseCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.MaliciousRecipients(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("could not build recipients report: %w", err)
	}

	return newReport(entries), nil
}

func newReport(entries []domain.ReportEntry) *domain.Report {
	if entries == nil {
		entries = []domain.ReportEntry{}
	}

	return &domain.Report{
		GeneratedAt: time.Now().UTC(),
		Total:       len(entries),
		Data:        entries,
	}
}
