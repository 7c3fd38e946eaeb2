package postgres

import (
	"context"
	"fmt"

	"spamoverflow/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// MaliciousSenders counts malicious emails grouped by sender address
// across every customer. The actors report is global by contract with the
// original service, so no customer filter is applied here.
func (p *PgSQL) MaliciousSenders(ctx context.Context) ([]domain.ReportEntry, error) {
	var rows []PgReportRow
	if err := p.Builder.From(emailsTable).
		Select(goqu.I("from_address").As("id"), goqu.COUNT(goqu.L("*")).As("count")).
		Where(goqu.I("malicious").IsTrue()).
		GroupBy(goqu.I("from_address")).
		Order(goqu.I("from_address").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch malicious senders from pg: %w", err)
	}

	return pgReportRowsToDomain(rows), nil
}

// MaliciousDomains counts domain occurrences joined to malicious emails
// submitted by the customer, grouped by domain.
func (p *PgSQL) MaliciousDomains(ctx context.Context, customerID domain.CustomerID) ([]domain.ReportEntry, error) {
	var rows []PgReportRow
	if err := p.Builder.From(emailDomainsTable).
		Select(goqu.I(emailDomainsTable+".domain").As("id"), goqu.COUNT(goqu.L("*")).As("count")).
		Join(
			goqu.T(emailsTable),
			goqu.On(goqu.I(emailsTable+".id").Eq(goqu.I(emailDomainsTable+".email_id"))),
		).
		Where(
			goqu.I(emailDomainsTable+".sender_id").Eq(uuid.UUID(customerID)),
			goqu.I(emailsTable+".malicious").IsTrue(),
		).
		GroupBy(goqu.I(emailDomainsTable + ".domain")).
		Order(goqu.I(emailDomainsTable + ".domain").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch malicious domains from pg: %w", err)
	}

	return pgReportRowsToDomain(rows), nil
}

// MaliciousRecipients counts the customer's malicious emails grouped by
// recipient address.
func (p *PgSQL) MaliciousRecipients(ctx context.Context, customerID domain.CustomerID) ([]domain.ReportEntry, error) {
	var rows []PgReportRow
	if err := p.Builder.From(emailsTable).
		Select(goqu.I("to_address").As("id"), goqu.COUNT(goqu.L("*")).As("count")).
		Where(
			goqu.I("customer_id").Eq(uuid.UUID(customerID)),
			goqu.I("malicious").IsTrue(),
		).
		GroupBy(goqu.I("to_address")).
		Order(goqu.I("to_address").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch malicious recipients from pg: %w", err)
	}

	return pgReportRowsToDomain(rows), nil
}
