package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Actors reports malicious emails grouped by sender address. The
// aggregation spans all customers; the path customer only has its format
// validated.
func (h *Handler) Actors(c *gin.Context) {
	report, err := h.deps.Querier.MaliciousSenders(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, newReportView(report))
}

// Domains reports domains seen in the customer's malicious emails.
func (h *Handler) Domains(c *gin.Context) {
	report, err := h.deps.Querier.MaliciousDomains(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, newReportView(report))
}

// Recipients reports the customer's malicious emails grouped by recipient
// address.
func (h *Handler) Recipients(c *gin.Context) {
	report, err := h.deps.Querier.MaliciousRecipients(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, newReportView(report))
}
