// Package query implements the read side of the service: filtered email
// listings, single-email lookups and the three aggregate reports.
package query

import (
	"strconv"
	"strings"

	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/serrors"
	"spamoverflow/pkg/storage"
	"spamoverflow/pkg/validate"
)

const (
	// DefaultLimit is applied when no limit parameter is supplied.
	DefaultLimit = 100
	// MaxLimit is the largest accepted page size.
	MaxLimit = 1000
)

// ListParams carries the raw, as-received query parameters of an email
// listing. Empty string means "not supplied"; every supplied value is
// validated strictly and a single bad parameter rejects the whole request.
type ListParams struct {
	Limit         string
	Offset        string
	Start         string
	End           string
	From          string
	To            string
	State         string
	OnlyMalicious string
}

// filters validates and converts the raw parameters into storage filters
// plus the resolved limit and offset.
func (p ListParams) filters() (storage.EmailFilters, uint, uint, error) {
	var f storage.EmailFilters

	limit := uint(DefaultLimit)
	if p.Limit != "" {
		n, err := strconv.Atoi(p.Limit)
		if err != nil || n <= 0 || n > MaxLimit {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid limit %q", p.Limit)
		}
		limit = uint(n)
	}

	var offset uint
	if p.Offset != "" {
		n, err := strconv.Atoi(p.Offset)
		if err != nil || n < 0 {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid offset %q", p.Offset)
		}
		offset = uint(n)
	}

	if p.Start != "" {
		t, err := validate.ParseTimestamp(p.Start)
		if err != nil {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid start timestamp %q", p.Start)
		}
		f.Start = &t
	}
	if p.End != "" {
		t, err := validate.ParseTimestamp(p.End)
		if err != nil {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid end timestamp %q", p.End)
		}
		f.End = &t
	}

	if p.From != "" {
		if !validate.Address(p.From) {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid from address %q", p.From)
		}
		f.From = p.From
	}
	if p.To != "" {
		if !validate.Address(p.To) {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid to address %q", p.To)
		}
		f.To = p.To
	}

	if p.State != "" {
		if !domain.ValidEmailStatus(p.State) {
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid state %q", p.State)
		}
		f.Status = domain.EmailStatus(p.State)
	}

	if p.OnlyMalicious != "" {
		switch strings.ToLower(p.OnlyMalicious) {
		case "true":
			f.OnlyMalicious = true
		case "false":
		default:
			return f, 0, 0, serrors.With(serrors.ErrBadRequest, "invalid only_malicious %q", p.OnlyMalicious)
		}
	}

	return f, limit, offset, nil
}
