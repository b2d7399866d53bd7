package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"porteo/internal/domain"
	"porteo/internal/port"
)

type shipmentRepo struct {
	db *sqlx.DB
}

// NewShipmentRepo creates a new PostgreSQL-backed ShipmentRepository.
func NewShipmentRepo(db *sqlx.DB) port.ShipmentRepository {
	return &shipmentRepo{db: db}
}

const shipmentUpsert = `INSERT INTO shipments (
	id, bl_no, containers, origin, destination, vessel, voyage,
	etd, eta, atd, ata, status, freight_cost, freight_curr,
	created_at, updated_at
) VALUES (
	:id, :bl_no, :containers, :origin, :destination, :vessel, :voyage,
	:etd, :eta, :atd, :ata, :status, :freight_cost, :freight_curr,
	:created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	bl_no = EXCLUDED.bl_no, containers = EXCLUDED.containers,
	origin = EXCLUDED.origin, destination = EXCLUDED.destination,
	vessel = EXCLUDED.vessel, voyage = EXCLUDED.voyage,
	etd = EXCLUDED.etd, eta = EXCLUDED.eta,
	atd = EXCLUDED.atd, ata = EXCLUDED.ata,
	status = EXCLUDED.status, freight_cost = EXCLUDED.freight_cost,
	freight_curr = EXCLUDED.freight_curr, updated_at = EXCLUDED.updated_at`

func (r *shipmentRepo) List(ctx context.Context) ([]domain.Shipment, error) {
	var out []domain.Shipment
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM shipments ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("shipmentRepo.List: %w", err)
	}
	return out, nil
}

func (r *shipmentRepo) Upsert(ctx context.Context, s *domain.Shipment) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, shipmentUpsert, s); err != nil {
		return fmt.Errorf("shipmentRepo.Upsert: %w", err)
	}
	return nil
}

func (r *shipmentRepo) BulkUpsert(ctx context.Context, batch []domain.Shipment) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range batch {
		if batch[i].CreatedAt.IsZero() {
			batch[i].CreatedAt = now
		}
	}
	if _, err := r.db.NamedExecContext(ctx, shipmentUpsert, batch); err != nil {
		return fmt.Errorf("shipmentRepo.BulkUpsert: %w", err)
	}
	return nil
}

func (r *shipmentRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM shipments WHERE bl_no = $1", blNo)
	if err != nil {
		return 0, fmt.Errorf("shipmentRepo.DeleteByBL: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
