// Package port defines the persistence and collaborator contracts consumed by
// the store, cascade, and reconciliation layers.
package port

import (
	"context"

	"github.com/google/uuid"

	"porteo/internal/domain"
)

// ShipmentRepository persists shipments keyed by id, with BLNo as the join key
// for dependent collections.
type ShipmentRepository interface {
	List(ctx context.Context) ([]domain.Shipment, error)
	Upsert(ctx context.Context, s *domain.Shipment) error
	BulkUpsert(ctx context.Context, batch []domain.Shipment) error
	// DeleteByBL removes every shipment with the exact (non-normalized) BL and
	// returns the number of rows removed.
	DeleteByBL(ctx context.Context, blNo string) (int64, error)
}

// CostRepository persists cost/invoice records.
type CostRepository interface {
	List(ctx context.Context) ([]domain.CostRecord, error)
	Upsert(ctx context.Context, c *domain.CostRecord) error
	BulkUpsert(ctx context.Context, batch []domain.CostRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	// BatchDelete removes the given ids in one statement and reports how many
	// rows were actually removed. Missing ids are not an error: cost deletions
	// are idempotent and safe to retry.
	BatchDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// PreAlertRepository persists booking pre-alerts.
type PreAlertRepository interface {
	List(ctx context.Context) ([]domain.PreAlertRecord, error)
	Upsert(ctx context.Context, p *domain.PreAlertRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBooking(ctx context.Context, bookingAbw string) (int64, error)
}

// VesselTrackingRepository persists per-container vessel tracking rows.
type VesselTrackingRepository interface {
	List(ctx context.Context) ([]domain.VesselTrackingRecord, error)
	Upsert(ctx context.Context, r *domain.VesselTrackingRecord) error
	BulkUpsert(ctx context.Context, batch []domain.VesselTrackingRecord) error
	DeleteByBL(ctx context.Context, blNo string) (int64, error)
}

// CustomsClearanceRepository persists per-container customs clearance rows.
type CustomsClearanceRepository interface {
	List(ctx context.Context) ([]domain.CustomsClearanceRecord, error)
	Upsert(ctx context.Context, r *domain.CustomsClearanceRecord) error
	BulkUpsert(ctx context.Context, batch []domain.CustomsClearanceRecord) error
	DeleteByBL(ctx context.Context, blNo string) (int64, error)
}

// EquipmentTrackingRepository persists per-container equipment rows.
type EquipmentTrackingRepository interface {
	List(ctx context.Context) ([]domain.EquipmentTrackingRecord, error)
	Upsert(ctx context.Context, r *domain.EquipmentTrackingRecord) error
	BulkUpsert(ctx context.Context, batch []domain.EquipmentTrackingRecord) error
	DeleteByBL(ctx context.Context, blNo string) (int64, error)
}

// SupplierRepository persists suppliers and their quotation price lists.
type SupplierRepository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Upsert(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
