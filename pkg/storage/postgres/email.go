package postgres

import (
	"context"
	"fmt"

	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	emailsTable       = "emails"
	emailDomainsTable = "email_domains"
)

// StoreEmail inserts the email row together with all of its domain
// occurrences. Atomicity comes from the handle: the ingestion pipeline
// calls this through WithTx, so readers never observe an email without
// its full domain set.
func (p *PgSQL) StoreEmail(ctx context.Context,
	email domain.Email,
	occurrences []domain.DomainOccurrence) (*domain.Email, error) {
	var row PgEmail
	if err := row.FromDomain(email); err != nil {
		return nil, err
	}

	var stored PgEmail
	found, err := p.Builder.Insert(emailsTable).
		Rows(row).
		Returning(&PgEmail{}).
		Executor().ScanStructContext(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("could not store email into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store email into pg: no row returned")
	}

	if len(occurrences) > 0 {
		rows := make([]PgEmailDomain, len(occurrences))
		for i := range occurrences {
			rows[i].FromDomain(occurrences[i])
		}

		if _, err := p.Builder.Insert(emailDomainsTable).
			Rows(rows).
			Executor().ExecContext(ctx); err != nil {
			return nil, fmt.Errorf("could not store email domains into pg: %w", err)
		}
	}

	return stored.ToDomain()
}

// Emails returns the customer's emails matching the filters. Results are
// ordered by created_at ascending with id ascending as a tiebreak; the
// order is part of the storage contract so paginated reads are stable.
func (p *PgSQL) Emails(ctx context.Context,
	customerID domain.CustomerID,
	filters storage.EmailFilters,
	limit uint,
	offset uint) ([]domain.Email, error) {
	w := []goqu.Expression{
		goqu.I("customer_id").Eq(uuid.UUID(customerID)),
	}
	if filters.Start != nil {
		w = append(w, goqu.I("created_at").Gte(*filters.Start))
	}
	if filters.End != nil {
		w = append(w, goqu.I("created_at").Lte(*filters.End))
	}
	if filters.From != "" {
		w = append(w, goqu.I("from_address").Eq(filters.From))
	}
	if filters.To != "" {
		w = append(w, goqu.I("to_address").Eq(filters.To))
	}
	if filters.Status != "" {
		w = append(w, goqu.I("status").Eq(string(filters.Status)))
	}
	if filters.OnlyMalicious {
		w = append(w, goqu.I("malicious").IsTrue())
	}

	var rows []PgEmail
	if err := p.Builder.From(emailsTable).
		Where(w...).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Limit(limit).
		Offset(offset).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch emails from pg: %w", err)
	}

	return pgEmailsToDomain(rows)
}

// EmailByID returns one email scoped to the customer, or nil when absent.
func (p *PgSQL) EmailByID(ctx context.Context,
	customerID domain.CustomerID,
	emailID domain.EmailID) (*domain.Email, error) {
	var row PgEmail
	found, err := p.Builder.From(emailsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(emailID)),
			goqu.I("customer_id").Eq(uuid.UUID(customerID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch email by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
