package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"porteo/internal/domain"
	"porteo/internal/service"
)

// ShipmentHandler handles the shipment collection endpoints.
type ShipmentHandler struct {
	bookingService service.BookingService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(bookingService service.BookingService) *ShipmentHandler {
	return &ShipmentHandler{bookingService: bookingService}
}

// List handles GET /api/v1/shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	RespondOK(c, h.bookingService.Shipments(c.Request.Context()))
}

// Update handles PUT /api/v1/shipments
func (h *ShipmentHandler) Update(c *gin.Context) {
	var rec domain.Shipment
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid shipment record")
		return
	}
	if err := h.bookingService.UpdateShipment(c.Request.Context(), &rec); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}
