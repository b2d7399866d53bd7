package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"porteo/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, "SHIPMENT_NOT_FOUND", "shipment not found"
	case errors.Is(err, domain.ErrCostNotFound):
		return http.StatusNotFound, "COST_NOT_FOUND", "cost record not found"
	case errors.Is(err, domain.ErrPreAlertNotFound):
		return http.StatusNotFound, "PRE_ALERT_NOT_FOUND", "pre-alert not found"
	case errors.Is(err, domain.ErrSupplierNotFound):
		return http.StatusNotFound, "SUPPLIER_NOT_FOUND", "supplier not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "BOOKING_NOT_FOUND", "no records found for booking"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrMissingBooking):
		return http.StatusBadRequest, "MISSING_BOOKING", "booking reference is required"
	case errors.Is(err, domain.ErrMissingCostType):
		return http.StatusBadRequest, "MISSING_COST_TYPE", "cost type is required"
	case errors.Is(err, domain.ErrInvalidCostType):
		return http.StatusBadRequest, "INVALID_COST_TYPE", "invalid cost type; allowed: PREPAYMENTS, INLAND, BROKER, AIR, FREIGHT"
	case errors.Is(err, domain.ErrShipmentLinkInvalid):
		return http.StatusBadRequest, "INVALID_SHIPMENT_LINK", "cost record references a shipment that does not exist"
	case errors.Is(err, domain.ErrUnknownCollection):
		return http.StatusBadRequest, "UNKNOWN_COLLECTION", "unknown collection"
	case errors.Is(err, domain.ErrEmptyImport):
		return http.StatusBadRequest, "EMPTY_IMPORT", "import file contains no usable rows"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
