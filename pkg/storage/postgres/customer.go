package postgres

import (
	"context"
	"fmt"

	"spamoverflow/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const customersTable = "customers"

// UpsertCustomer inserts the customer if absent. ON CONFLICT DO NOTHING
// makes the operation atomic under concurrent ingestions for the same new
// customer id: exactly one row is created and no uniqueness violation
// reaches the caller. An existing row is never modified.
func (p *PgSQL) UpsertCustomer(ctx context.Context, customer domain.Customer) error {
	var row PgCustomer
	row.FromDomain(customer)

	if _, err := p.Builder.Insert(customersTable).
		Rows(row).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not upsert customer into pg: %w", err)
	}

	return nil
}
