package service

import (
	"context"

	"porteo/internal/cascade"
	"porteo/internal/domain"
	"porteo/internal/store"
)

// BookingService handles booking-level writes: extraction processing, the
// cascade into the derived collections, exact-match booking deletion, and the
// shared-field broadcasts.
type BookingService interface {
	ProcessExtraction(ctx context.Context, in cascade.ExtractionInput) (*domain.PreAlertRecord, error)
	DeleteBooking(ctx context.Context, blNo string) error
	PreAlerts(ctx context.Context) []domain.PreAlertRecord
	Shipments(ctx context.Context) []domain.Shipment
	VesselTracking(ctx context.Context) []domain.VesselTrackingRecord
	CustomsClearance(ctx context.Context) []domain.CustomsClearanceRecord
	EquipmentTracking(ctx context.Context) []domain.EquipmentTrackingRecord
	UpdateVesselTracking(ctx context.Context, rec *domain.VesselTrackingRecord, broadcast bool) (int, error)
	UpdateCustomsClearance(ctx context.Context, rec *domain.CustomsClearanceRecord, broadcast bool) (int, error)
	UpdateEquipmentTracking(ctx context.Context, rec *domain.EquipmentTrackingRecord) error
	UpdateShipment(ctx context.Context, rec *domain.Shipment) error
}

type bookingService struct {
	store      *store.Store
	propagator *cascade.Propagator
}

// NewBookingService creates a new BookingService implementation.
func NewBookingService(st *store.Store, propagator *cascade.Propagator) BookingService {
	return &bookingService{store: st, propagator: propagator}
}

func (s *bookingService) ProcessExtraction(ctx context.Context, in cascade.ExtractionInput) (*domain.PreAlertRecord, error) {
	return s.propagator.ProcessExtraction(ctx, in)
}

func (s *bookingService) DeleteBooking(ctx context.Context, blNo string) error {
	return s.propagator.DeleteBooking(ctx, blNo)
}

func (s *bookingService) PreAlerts(ctx context.Context) []domain.PreAlertRecord {
	return s.store.PreAlerts()
}

func (s *bookingService) Shipments(ctx context.Context) []domain.Shipment {
	return s.store.Shipments()
}

func (s *bookingService) VesselTracking(ctx context.Context) []domain.VesselTrackingRecord {
	return s.store.VesselTracking()
}

func (s *bookingService) CustomsClearance(ctx context.Context) []domain.CustomsClearanceRecord {
	return s.store.CustomsClearance()
}

func (s *bookingService) EquipmentTracking(ctx context.Context) []domain.EquipmentTrackingRecord {
	return s.store.EquipmentTracking()
}

// UpdateVesselTracking saves one row and, when broadcast is set, copies its
// shared fields onto the sibling rows of the same BL. Returns the number of
// sibling rows touched.
func (s *bookingService) UpdateVesselTracking(ctx context.Context, rec *domain.VesselTrackingRecord, broadcast bool) (int, error) {
	if err := s.store.UpdateVesselTracking(ctx, rec); err != nil {
		return 0, err
	}
	if !broadcast {
		return 0, nil
	}
	return s.propagator.BroadcastVesselSharedFields(ctx, rec)
}

func (s *bookingService) UpdateCustomsClearance(ctx context.Context, rec *domain.CustomsClearanceRecord, broadcast bool) (int, error) {
	if err := s.store.UpdateCustomsClearance(ctx, rec); err != nil {
		return 0, err
	}
	if !broadcast {
		return 0, nil
	}
	return s.propagator.BroadcastCustomsSharedFields(ctx, rec)
}

func (s *bookingService) UpdateEquipmentTracking(ctx context.Context, rec *domain.EquipmentTrackingRecord) error {
	return s.store.UpdateEquipmentTracking(ctx, rec)
}

func (s *bookingService) UpdateShipment(ctx context.Context, rec *domain.Shipment) error {
	return s.store.UpdateShipment(ctx, rec)
}
