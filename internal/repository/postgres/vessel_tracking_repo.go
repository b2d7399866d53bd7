package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"porteo/internal/domain"
	"porteo/internal/port"
)

type vesselTrackingRepo struct {
	db *sqlx.DB
}

// NewVesselTrackingRepo creates a new PostgreSQL-backed VesselTrackingRepository.
func NewVesselTrackingRepo(db *sqlx.DB) port.VesselTrackingRepository {
	return &vesselTrackingRepo{db: db}
}

const vesselTrackingUpsert = `INSERT INTO vessel_tracking (
	id, bl_no, container_no, container_size, vessel, voyage, pol, pod,
	etd, eta, atd, ata, model, invoice_no, quantity, project_type,
	contract_no, created_at, updated_at
) VALUES (
	:id, :bl_no, :container_no, :container_size, :vessel, :voyage, :pol, :pod,
	:etd, :eta, :atd, :ata, :model, :invoice_no, :quantity, :project_type,
	:contract_no, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	bl_no = EXCLUDED.bl_no, container_no = EXCLUDED.container_no,
	container_size = EXCLUDED.container_size, vessel = EXCLUDED.vessel,
	voyage = EXCLUDED.voyage, pol = EXCLUDED.pol, pod = EXCLUDED.pod,
	etd = EXCLUDED.etd, eta = EXCLUDED.eta,
	atd = EXCLUDED.atd, ata = EXCLUDED.ata,
	model = EXCLUDED.model, invoice_no = EXCLUDED.invoice_no,
	quantity = EXCLUDED.quantity, project_type = EXCLUDED.project_type,
	contract_no = EXCLUDED.contract_no, updated_at = EXCLUDED.updated_at`

func (r *vesselTrackingRepo) List(ctx context.Context) ([]domain.VesselTrackingRecord, error) {
	var out []domain.VesselTrackingRecord
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM vessel_tracking ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("vesselTrackingRepo.List: %w", err)
	}
	return out, nil
}

func (r *vesselTrackingRepo) Upsert(ctx context.Context, rec *domain.VesselTrackingRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, vesselTrackingUpsert, rec); err != nil {
		return fmt.Errorf("vesselTrackingRepo.Upsert: %w", err)
	}
	return nil
}

func (r *vesselTrackingRepo) BulkUpsert(ctx context.Context, batch []domain.VesselTrackingRecord) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range batch {
		if batch[i].CreatedAt.IsZero() {
			batch[i].CreatedAt = now
		}
	}
	if _, err := r.db.NamedExecContext(ctx, vesselTrackingUpsert, batch); err != nil {
		return fmt.Errorf("vesselTrackingRepo.BulkUpsert: %w", err)
	}
	return nil
}

func (r *vesselTrackingRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vessel_tracking WHERE bl_no = $1", blNo)
	if err != nil {
		return 0, fmt.Errorf("vesselTrackingRepo.DeleteByBL: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
