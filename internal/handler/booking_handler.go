package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"porteo/internal/cascade"
	"porteo/internal/domain"
	"porteo/internal/service"
)

// BookingHandler handles booking extraction processing, the derived tracking
// collections, and booking deletion.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// ProcessExtraction handles POST /api/v1/bookings/extractions
func (h *BookingHandler) ProcessExtraction(c *gin.Context) {
	var req struct {
		PreAlert        domain.PreAlertRecord `json:"pre_alert" binding:"required"`
		Containers      []string              `json:"containers"`
		CreateEquipment bool                  `json:"create_equipment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "pre_alert is required")
		return
	}

	merged, err := h.bookingService.ProcessExtraction(c.Request.Context(), cascade.ExtractionInput{
		PreAlert:        req.PreAlert,
		Containers:      req.Containers,
		CreateEquipment: req.CreateEquipment,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, merged)
}

// Delete handles DELETE /api/v1/bookings/:bl
func (h *BookingHandler) Delete(c *gin.Context) {
	blNo := c.Param("bl")
	if err := h.bookingService.DeleteBooking(c.Request.Context(), blNo); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": blNo})
}

// ListPreAlerts handles GET /api/v1/pre-alerts
func (h *BookingHandler) ListPreAlerts(c *gin.Context) {
	RespondOK(c, h.bookingService.PreAlerts(c.Request.Context()))
}

// ListVesselTracking handles GET /api/v1/vessel-tracking
func (h *BookingHandler) ListVesselTracking(c *gin.Context) {
	RespondOK(c, h.bookingService.VesselTracking(c.Request.Context()))
}

// ListCustomsClearance handles GET /api/v1/customs-clearance
func (h *BookingHandler) ListCustomsClearance(c *gin.Context) {
	RespondOK(c, h.bookingService.CustomsClearance(c.Request.Context()))
}

// ListEquipmentTracking handles GET /api/v1/equipment-tracking
func (h *BookingHandler) ListEquipmentTracking(c *gin.Context) {
	RespondOK(c, h.bookingService.EquipmentTracking(c.Request.Context()))
}

// UpdateVesselTracking handles PUT /api/v1/vessel-tracking. With
// broadcast=true the shared fields are copied to the sibling rows of the BL.
func (h *BookingHandler) UpdateVesselTracking(c *gin.Context) {
	var rec domain.VesselTrackingRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid vessel tracking record")
		return
	}
	broadcast, _ := strconv.ParseBool(c.Query("broadcast"))

	siblings, err := h.bookingService.UpdateVesselTracking(c.Request.Context(), &rec, broadcast)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"record": rec, "siblings_updated": siblings})
}

// UpdateCustomsClearance handles PUT /api/v1/customs-clearance
func (h *BookingHandler) UpdateCustomsClearance(c *gin.Context) {
	var rec domain.CustomsClearanceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid customs clearance record")
		return
	}
	broadcast, _ := strconv.ParseBool(c.Query("broadcast"))

	siblings, err := h.bookingService.UpdateCustomsClearance(c.Request.Context(), &rec, broadcast)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"record": rec, "siblings_updated": siblings})
}

// UpdateEquipmentTracking handles PUT /api/v1/equipment-tracking
func (h *BookingHandler) UpdateEquipmentTracking(c *gin.Context) {
	var rec domain.EquipmentTrackingRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid equipment tracking record")
		return
	}
	if err := h.bookingService.UpdateEquipmentTracking(c.Request.Context(), &rec); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}
