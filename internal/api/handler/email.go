package handler

import (
	"net/http"

	"spamoverflow/internal/query"
	"spamoverflow/pkg/domain"

	"github.com/gin-gonic/gin"
)

// CreateEmail accepts one email for scanning. The pipeline runs
// synchronously: a 201 response already carries the verdict.
func (h *Handler) CreateEmail(c *gin.Context) {
	var req domain.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})

		return
	}

	email, err := h.deps.Ingestor.Ingest(c.Request.Context(), c.Param("customer_id"), req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, newEmailView(email))
}

// ListEmails returns the customer's emails matching the query filters.
func (h *Handler) ListEmails(c *gin.Context) {
	params := query.ListParams{
		Limit:         c.Query("limit"),
		Offset:        c.Query("offset"),
		Start:         c.Query("start"),
		End:           c.Query("end"),
		From:          c.Query("from"),
		To:            c.Query("to"),
		State:         c.Query("state"),
		OnlyMalicious: c.Query("only_malicious"),
	}

	emails, err := h.deps.Querier.ListEmails(c.Request.Context(), c.Param("customer_id"), params)
	if err != nil {
		writeError(c, err)

		return
	}

	views := make([]EmailView, 0, len(emails))
	for i := range emails {
		views = append(views, newEmailView(&emails[i]))
	}

	c.JSON(http.StatusOK, views)
}

// GetEmail returns one email scoped to the customer.
func (h *Handler) GetEmail(c *gin.Context) {
	email, err := h.deps.Querier.Email(c.Request.Context(), c.Param("customer_id"), c.Param("id"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, newEmailView(email))
}
