package domain

import "time"

// ReportEntry is one aggregated group in a report: a sender address,
// domain or recipient address together with its malicious-email count.
type ReportEntry struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// Report is the common envelope of the three aggregate reports.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Total       int           `json:"total"`
	Data        []ReportEntry `json:"data"`
}
