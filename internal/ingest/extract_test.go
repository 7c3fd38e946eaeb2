package ingest

import (
	"testing"

	"spamoverflow/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestExtractDomains(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "no urls",
			body: "hello there, nothing suspicious here",
			want: []string{},
		},
		{
			name: "single http url",
			body: "click http://evil.com/login now",
			want: []string{"evil.com"},
		},
		{
			name: "single https url",
			body: "see https://example.org",
			want: []string{"example.org"},
		},
		{
			name: "path and query are cut",
			body: "https://evil.com/path/deeper?q=1&x=2",
			want: []string{"evil.com"},
		},
		{
			name: "query without path is cut",
			body: "https://evil.com?track=abc",
			want: []string{"evil.com"},
		},
		{
			name: "same domain collapses across urls",
			body: "http://evil.com/a then https://evil.com/b?x=1 and http://evil.com",
			want: []string{"evil.com"},
		},
		{
			name: "first seen order preserved",
			body: "https://b.example/x http://a.example/y https://b.example/z",
			want: []string{"b.example", "a.example"},
		},
		{
			name: "subdomains are distinct",
			body: "http://mail.evil.com/a http://evil.com/b",
			want: []string{"mail.evil.com", "evil.com"},
		},
		{
			name: "case is preserved",
			body: "http://Evil.COM/a",
			want: []string{"Evil.COM"},
		},
		{
			name: "non-http schemes ignored",
			body: "ftp://files.example.com/a and mailto:x@y.com",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailID := domain.EmailID(uuid.New())
			senderID := domain.CustomerID(uuid.New())

			occurrences, domains := ExtractDomains(tt.body, emailID, senderID, "victim@corp.com")
			require.Equal(t, tt.want, domains)
			require.Len(t, occurrences, len(tt.want))

			for i, occ := range occurrences {
				require.Equal(t, tt.want[i], occ.Domain)
				require.Equal(t, emailID, occ.EmailID)
				require.Equal(t, senderID, occ.SenderID)
				require.Equal(t, "victim@corp.com", occ.ToAddress)
			}
		})
	}
}
