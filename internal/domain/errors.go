package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrShipmentNotFound    = errors.New("shipment not found")
	ErrCostNotFound        = errors.New("cost record not found")
	ErrPreAlertNotFound    = errors.New("pre-alert not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrBookingNotFound     = errors.New("no records found for booking")
	ErrMissingBooking      = errors.New("booking reference is required")
	ErrMissingCostType     = errors.New("cost type is required")
	ErrInvalidCostType     = errors.New("invalid cost type")
	ErrShipmentLinkInvalid = errors.New("cost record references a shipment that does not exist")
	ErrUnknownCollection   = errors.New("unknown collection")
	ErrEmptyImport         = errors.New("import file contains no usable rows")
)
