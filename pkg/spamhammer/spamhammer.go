// Package spamhammer talks to the external SpamHammer scan engine. The
// engine is an opaque program that reads one JSON request from standard
// input and writes one JSON verdict to standard output. The Client
// interface hides the subprocess round trip so the pipeline can be tested
// against an in-process fake and the engine swapped for a networked one.
package spamhammer

import "context"

// Request is the single JSON document written to the engine's input.
type Request struct {
	// ID is the server-generated email identifier.
	ID string `json:"id"`
	// Content is the raw email body.
	Content string `json:"content"`
	// Metadata is the opaque spamhammer blob from the ingest request.
	Metadata string `json:"metadata"`
}

// Verdict is the malicious/benign determination for one email.
type Verdict struct {
	Malicious bool
}

// Client submits one email to the scan engine and decodes its verdict.
// Scan blocks until the engine finishes; implementations must honor ctx
// cancellation and must not hold any shared resource while blocked.
type Client interface {
	Scan(ctx context.Context, req Request) (*Verdict, error)
}
