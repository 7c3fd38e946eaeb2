// Package handler implements the HTTP handlers of the v1 API. Handlers
// translate between the wire representation and the ingest/query services;
// they hold no business logic of their own.
package handler

import (
	"errors"
	"net/http"
	"time"

	"spamoverflow/internal/ingest"
	"spamoverflow/internal/query"
	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/logger"
	"spamoverflow/pkg/serrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps holds the services the handlers dispatch to.
type Deps struct {
	Ingestor ingest.Ingestor
	Querier  query.Querier
}

// Handler serves the v1 API endpoints.
type Handler struct {
	deps Deps
}

// New creates a Handler with the given dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Health responds 200 whenever the process is serving requests.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps semantic error kinds onto HTTP status codes. Anything
// unrecognized is a 500 with a generic message so internal details never
// leak to the caller.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, serrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, serrors.ErrScanFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), "request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// EmailContentsView is the wire shape of the email contents. The body is
// deliberately absent from responses.
type EmailContentsView struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
}

// EmailMetadataView echoes the opaque engine configuration back verbatim.
type EmailMetadataView struct {
	SpamHammer string `json:"spamhammer"`
}

// EmailView is the wire shape of one scanned email.
type EmailView struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	Contents  EmailContentsView `json:"contents"`
	Status    string            `json:"status"`
	Malicious bool              `json:"malicious"`
	Domains   []string          `json:"domains"`
	Metadata  EmailMetadataView `json:"metadata"`
}

func newEmailView(email *domain.Email) EmailView {
	domains := email.Domains
	if domains == nil {
		domains = []string{}
	}

	return EmailView{
		ID:        email.ID.String(),
		CreatedAt: email.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: email.UpdatedAt.UTC().Format(time.RFC3339),
		Contents: EmailContentsView{
			To:      email.To,
			From:    email.From,
			Subject: email.Subject,
		},
		Status:    string(email.Status),
		Malicious: email.Malicious,
		Domains:   domains,
		Metadata:  EmailMetadataView{SpamHammer: email.Metadata},
	}
}

// ReportView is the wire shape of the aggregate reports.
type ReportView struct {
	GeneratedAt string               `json:"generated_at"`
	Total       int                  `json:"total"`
	Data        []domain.ReportEntry `json:"data"`
}

func newReportView(report *domain.Report) ReportView {
	return ReportView{
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Total:       report.Total,
		Data:        report.Data,
	}
}
