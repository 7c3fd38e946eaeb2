package ingest

import (
	"regexp"
	"strings"

	"spamoverflow/pkg/domain"
)

var (
	urlPattern    = regexp.MustCompile(`https?://\S+`)
	schemePattern = regexp.MustCompile(`^https?://`)
)

// ExtractDomains scans an email body for URLs and derives the deduplicated
// set of domain strings, preserving first-seen order. For every match the
// scheme is stripped, the host is cut at the first "/" and then at the
// first "?". The host is kept exactly as written: no lowercasing and no
// subdomain reduction, matching the wire-compatible extraction rule of the
// original service. Each unique domain yields one DomainOccurrence tied to
// the given email, sender and recipient.
//
// The function is pure; persisting the occurrences is the storage layer's
// job, invoked by the pipeline.
func ExtractDomains(body string,
	emailID domain.EmailID,
	senderID domain.CustomerID,
	toAddress string) ([]domain.DomainOccurrence, []string) {
	matches := urlPattern.FindAllString(body, -1)

	seen := make(map[string]struct{}, len(matches))
	occurrences := make([]domain.DomainOccurrence, 0, len(matches))
	domains := make([]string, 0, len(matches))

	for _, url := range matches {
		host := schemePattern.ReplaceAllString(url, "")
		host, _, _ = strings.Cut(host, "/")
		host, _, _ = strings.Cut(host, "?")

		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}

		domains = append(domains, host)
		occurrences = append(occurrences, domain.DomainOccurrence{
			Domain:    host,
			EmailID:   emailID,
			SenderID:  senderID,
			ToAddress: toAddress,
		})
	}

	return occurrences, domains
}
