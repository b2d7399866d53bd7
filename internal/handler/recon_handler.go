package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"porteo/internal/csvexport"
	"porteo/internal/domain"
	"porteo/internal/extract"
	"porteo/internal/recon"
	"porteo/internal/service"
)

// ReconHandler serves the reconciliation view and shipment resolution.
type ReconHandler struct {
	reconService service.ReconService
}

// NewReconHandler creates a new ReconHandler.
func NewReconHandler(reconService service.ReconService) *ReconHandler {
	return &ReconHandler{reconService: reconService}
}

// Rows handles GET /api/v1/recon/rows. An optional "type" query parameter
// restricts the view to one cost type.
func (h *ReconHandler) Rows(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		costType := domain.CostType(t)
		if !domain.ValidCostTypes[costType] {
			HandleError(c, domain.ErrInvalidCostType)
			return
		}
		RespondOK(c, h.reconService.RowsByType(c.Request.Context(), costType))
		return
	}
	RespondOK(c, h.reconService.Rows(c.Request.Context()))
}

// ExportCSV handles GET /api/v1/recon/export. Streams the reconciliation view
// as a CSV download, optionally restricted to one cost type.
func (h *ReconHandler) ExportCSV(c *gin.Context) {
	name := "recon"
	ctx := c.Request.Context()
	var exportRows []recon.Row
	if t := c.Query("type"); t != "" {
		costType := domain.CostType(t)
		if !domain.ValidCostTypes[costType] {
			HandleError(c, domain.ErrInvalidCostType)
			return
		}
		exportRows = h.reconService.RowsByType(ctx, costType)
		name = "recon_" + t
	} else {
		exportRows = h.reconService.Rows(ctx)
	}

	filename := csvexport.BuildFilename(name)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(exportRows); err != nil {
		return
	}
	w.Flush()
}

// Resolve handles GET /api/v1/recon/resolve
func (h *ReconHandler) Resolve(c *gin.Context) {
	containers := c.Query("containers")
	bl := c.Query("bl")
	if containers == "" && bl == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "containers or bl is required")
		return
	}
	RespondOK(c, h.reconService.ResolveShipment(c.Request.Context(), containers, bl))
}

// Duplicates handles GET /api/v1/recon/duplicates
func (h *ReconHandler) Duplicates(c *gin.Context) {
	RespondOK(c, h.reconService.Duplicates(c.Request.Context()))
}

// ExtractText handles POST /api/v1/recon/extract. It pulls BL and container
// references out of pasted free text.
func (h *ReconHandler) ExtractText(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}
	RespondOK(c, extract.FromText(req.Text))
}
