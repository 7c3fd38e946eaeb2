package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"spamoverflow/pkg/domain"

	"github.com/google/uuid"
)

type PgCustomer struct {
	ID    uuid.UUID `db:"id"`
	Email string    `db:"email"`
}

func (p *PgCustomer) FromDomain(c domain.Customer) {
	*p = PgCustomer{
		ID:    uuid.UUID(c.ID),
		Email: c.Email,
	}
}

type PgEmail struct {
	ID         uuid.UUID `db:"id"`
	CustomerID uuid.UUID `db:"customer_id"`

	ToAddress   string `db:"to_address"`
	FromAddress string `db:"from_address"`
	Subject     string `db:"subject"`
	Body        string `db:"body"`
	Metadata    string `db:"metadata"`

	Status    string          `db:"status"`
	Malicious bool            `db:"malicious"`
	Domains   json.RawMessage `db:"domains"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *PgEmail) ToDomain() (*domain.Email, error) {
	var domains []string
	if err := json.Unmarshal(p.Domains, &domains); err != nil {
		return nil, fmt.Errorf("could not unmarshal email domains: %w", err)
	}

	return &domain.Email{
		ID:         domain.EmailID(p.ID),
		CustomerID: domain.CustomerID(p.CustomerID),
		To:         p.ToAddress,
		From:       p.FromAddress,
		Subject:    p.Subject,
		Body:       p.Body,
		Metadata:   p.Metadata,
		Status:     domain.EmailStatus(p.Status),
		Malicious:  p.Malicious,
		Domains:    domains,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}, nil
}

func (p *PgEmail) FromDomain(email domain.Email) error {
	// a missing list still serializes as [] so readers never see null
	ds := email.Domains
	if ds == nil {
		ds = []string{}
	}
	domains, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("could not marshal email domains: %w", err)
	}

	*p = PgEmail{
		ID:          uuid.UUID(email.ID),
		CustomerID:  uuid.UUID(email.CustomerID),
		ToAddress:   email.To,
		FromAddress: email.From,
		Subject:     email.Subject,
		Body:        email.Body,
		Metadata:    email.Metadata,
		Status:      string(email.Status),
		Malicious:   email.Malicious,
		Domains:     domains,
		CreatedAt:   email.CreatedAt,
		UpdatedAt:   email.UpdatedAt,
	}

	return nil
}

func pgEmailsToDomain(emails []PgEmail) ([]domain.Email, error) {
	out := make([]domain.Email, 0, len(emails))
	for i := range emails {
		d, err := emails[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

type PgEmailDomain struct {
	Domain    string    `db:"domain"`
	EmailID   uuid.UUID `db:"email_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	ToAddress string    `db:"to_address"`
}

func (p *PgEmailDomain) FromDomain(occ domain.DomainOccurrence) {
	*p = PgEmailDomain{
		Domain:    occ.Domain,
		EmailID:   uuid.UUID(occ.EmailID),
		SenderID:  uuid.UUID(occ.SenderID),
		ToAddress: occ.ToAddress,
	}
}

// PgReportRow is one aggregated group of a report query.
type PgReportRow struct {
	ID    string `db:"id"`
	Count int64  `db:"count"`
}

func pgReportRowsToDomain(rows []PgReportRow) []domain.ReportEntry {
	out := make([]domain.ReportEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ReportEntry{ID: r.ID, Count: r.Count})
	}

	return out
}
