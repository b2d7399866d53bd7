package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"porteo/internal/domain"
	"porteo/internal/service"
)

// CostHandler handles cost record endpoints.
type CostHandler struct {
	costService   service.CostService
	maxImportSize int64
}

// NewCostHandler creates a new CostHandler. maxImportSize caps CSV uploads,
// in bytes.
func NewCostHandler(costService service.CostService, maxImportSize int64) *CostHandler {
	return &CostHandler{costService: costService, maxImportSize: maxImportSize}
}

// List handles GET /api/v1/costs
func (h *CostHandler) List(c *gin.Context) {
	RespondOK(c, h.costService.List(c.Request.Context()))
}

// Upsert handles POST /api/v1/costs
func (h *CostHandler) Upsert(c *gin.Context) {
	var rec domain.CostRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid cost record")
		return
	}

	saved, err := h.costService.Upsert(c.Request.Context(), &rec)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, saved)
}

// Delete handles DELETE /api/v1/costs/:id
func (h *CostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid cost id")
		return
	}
	if err := h.costService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Link handles POST /api/v1/costs/:id/link
func (h *CostHandler) Link(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid cost id")
		return
	}

	var req struct {
		ShipmentID uuid.UUID `json:"shipment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "shipment_id is required")
		return
	}

	rec, err := h.costService.Link(c.Request.Context(), id, req.ShipmentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// Unlink handles POST /api/v1/costs/:id/unlink
func (h *CostHandler) Unlink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid cost id")
		return
	}
	rec, err := h.costService.Unlink(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// ImportCSV handles POST /api/v1/costs/import. Multipart upload with a "file"
// part and a "type" form value.
func (h *CostHandler) ImportCSV(c *gin.Context) {
	costType := domain.CostType(c.PostForm("type"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	if fileHeader.Size > h.maxImportSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to read uploaded file")
		return
	}
	defer file.Close()

	report, err := h.costService.ImportCSV(c.Request.Context(), file, costType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, report)
}

// ImportDocument handles POST /api/v1/costs/documents. Multipart upload with
// a "file" part and a "type" form value; the file goes through the document
// extractor and lands as one cost record.
func (h *CostHandler) ImportDocument(c *gin.Context) {
	costType := domain.CostType(c.PostForm("type"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	if fileHeader.Size > h.maxImportSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to read uploaded file")
		return
	}

	rec, err := h.costService.ImportDocument(c.Request.Context(),
		content, fileHeader.Header.Get("Content-Type"), costType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// RunDedup handles POST /api/v1/costs/dedup
func (h *CostHandler) RunDedup(c *gin.Context) {
	report, err := h.costService.RunDedup(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}
