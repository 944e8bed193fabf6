package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/service"
)

// WebhookHandler serves the approve/reject links embedded in review
// emails. Responses are small HTML pages since they open in the
// reviewer's browser. Decisions still go through the workflow service,
// so an already-finalized receipt cannot be flipped from an old email.
type WebhookHandler struct {
	receiptService service.ReceiptService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(receiptService service.ReceiptService) *WebhookHandler {
	return &WebhookHandler{receiptService: receiptService}
}

// Approve handles GET /webhooks/receipts/:id/approve
func (h *WebhookHandler) Approve(c *gin.Context) {
	id, ok := webhookIDParam(c)
	if !ok {
		return
	}

	_, err := h.receiptService.Approve(c.Request.Context(), id, "Approved via email link")
	if err != nil {
		respondWebhookError(c, err)
		return
	}

	respondHTML(c, http.StatusOK, `<h1 style="color: green;">Receipt approved</h1>
<p>The system has recorded your decision.</p>`)
}

// RejectForm handles GET /webhooks/receipts/:id/reject
func (h *WebhookHandler) RejectForm(c *gin.Context) {
	id, ok := webhookIDParam(c)
	if !ok {
		return
	}

	respondHTML(c, http.StatusOK, fmt.Sprintf(`<h2 style="color: #d9534f;">Reject receipt %s</h2>
<form action="/webhooks/receipts/%s/reject" method="post" style="max-width: 400px; margin: 0 auto;">
  <p>Please provide the reason for rejection:</p>
  <textarea name="reason" rows="4" style="width: 100%%; padding: 10px;" required></textarea><br><br>
  <button type="submit" style="background-color: #d9534f; color: white; padding: 10px 20px; border: none; cursor: pointer;">Confirm rejection</button>
</form>`, id, id))
}

// RejectSubmit handles POST /webhooks/receipts/:id/reject
func (h *WebhookHandler) RejectSubmit(c *gin.Context) {
	id, ok := webhookIDParam(c)
	if !ok {
		return
	}

	reason := strings.TrimSpace(c.PostForm("reason"))
	_, err := h.receiptService.Reject(c.Request.Context(), id, reason)
	if err != nil {
		respondWebhookError(c, err)
		return
	}

	respondHTML(c, http.StatusOK, `<h1 style="color: #d9534f;">Receipt rejected</h1>
<p>The reason for rejection has been recorded.</p>`)
}

func webhookIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondHTML(c, http.StatusBadRequest, "<h1>Error: invalid receipt ID</h1>")
		return uuid.Nil, false
	}
	return id, true
}

func respondWebhookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrReceiptNotFound):
		respondHTML(c, http.StatusNotFound, "<h1>Error: receipt not found</h1>")
	case errors.Is(err, domain.ErrReceiptFinalized):
		respondHTML(c, http.StatusConflict,
			"<h1>Receipt already finalized</h1><p>This receipt was approved or rejected earlier; nothing was changed.</p>")
	case errors.Is(err, domain.ErrCommentaryRequired):
		respondHTML(c, http.StatusBadRequest, "<h1>Error: a rejection reason is required</h1>")
	default:
		respondHTML(c, http.StatusInternalServerError, "<h1>Error: could not record your decision</h1>")
	}
}

func respondHTML(c *gin.Context, status int, body string) {
	page := fmt.Sprintf(`<html>
  <body style="font-family: Arial; text-align: center; padding-top: 50px;">
%s
  </body>
</html>`, body)
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}
