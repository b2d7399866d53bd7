package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"porteo/internal/domain"
	"porteo/internal/service"
)

// SupplierHandler handles the supplier catalog endpoints.
type SupplierHandler struct {
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles GET /api/v1/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	RespondOK(c, h.supplierService.List(c.Request.Context()))
}

// Upsert handles POST /api/v1/suppliers
func (h *SupplierHandler) Upsert(c *gin.Context) {
	var rec domain.Supplier
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid supplier record")
		return
	}
	saved, err := h.supplierService.Upsert(c.Request.Context(), &rec)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, saved)
}

// Delete handles DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid supplier id")
		return
	}
	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
