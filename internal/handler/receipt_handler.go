package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recibo/internal/service"
)

// ReceiptHandler handles receipt intake and workflow endpoints.
type ReceiptHandler struct {
	intakeService  service.IntakeService
	receiptService service.ReceiptService
	exportService  service.ExportService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(
	intakeService service.IntakeService,
	receiptService service.ReceiptService,
	exportService service.ExportService,
) *ReceiptHandler {
	return &ReceiptHandler{
		intakeService:  intakeService,
		receiptService: receiptService,
		exportService:  exportService,
	}
}

// Upload handles POST /api/v1/receipts. The multipart file is run
// through the full intake pipeline; the response echoes the extracted
// fields on the created receipt.
func (h *ReceiptHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	receipt, err := h.intakeService.Ingest(c.Request.Context(), service.IntakeInput{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		File:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, receipt)
}

// List handles GET /api/v1/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	receipts, total, err := h.receiptService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, receipts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/receipts/:id
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, ok := receiptIDParam(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, receipt)
}

// History handles GET /api/v1/receipts/:id/history
func (h *ReceiptHandler) History(c *gin.Context) {
	id, ok := receiptIDParam(c)
	if !ok {
		return
	}

	entries, err := h.receiptService.History(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// FileURL handles GET /api/v1/receipts/:id/file. It returns a
// presigned link to the original artifact instead of proxying the
// bytes through the API.
func (h *ReceiptHandler) FileURL(c *gin.Context) {
	id, ok := receiptIDParam(c)
	if !ok {
		return
	}

	url, err := h.receiptService.FileURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Approve handles POST /api/v1/receipts/:id/approve
func (h *ReceiptHandler) Approve(c *gin.Context) {
	id, ok := receiptIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	_ = c.ShouldBindJSON(&req) // comment is optional, body may be empty

	entry, err := h.receiptService.Approve(c.Request.Context(), id, req.Comment)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Reject handles POST /api/v1/receipts/:id/reject
func (h *ReceiptHandler) Reject(c *gin.Context) {
	id, ok := receiptIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "COMMENTARY_REQUIRED", "rejection requires a reason")
		return
	}

	entry, err := h.receiptService.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Export handles GET /api/v1/receipts/export
func (h *ReceiptHandler) Export(c *gin.Context) {
	data, err := h.exportService.ExportXLSX(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("receipts-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func receiptIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt ID")
		return uuid.Nil, false
	}
	return id, true
}

func paginationParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
