package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"porteo/internal/domain"
	"porteo/internal/port"
)

type equipmentTrackingRepo struct {
	db *sqlx.DB
}

// NewEquipmentTrackingRepo creates a new PostgreSQL-backed EquipmentTrackingRepository.
func NewEquipmentTrackingRepo(db *sqlx.DB) port.EquipmentTrackingRepository {
	return &equipmentTrackingRepo{db: db}
}

const equipmentTrackingUpsert = `INSERT INTO equipment_tracking (
	id, bl_no, container_no, container_size, eir_date, return_date,
	demurrage_days, created_at, updated_at
) VALUES (
	:id, :bl_no, :container_no, :container_size, :eir_date, :return_date,
	:demurrage_days, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	bl_no = EXCLUDED.bl_no, container_no = EXCLUDED.container_no,
	container_size = EXCLUDED.container_size, eir_date = EXCLUDED.eir_date,
	return_date = EXCLUDED.return_date,
	demurrage_days = EXCLUDED.demurrage_days,
	updated_at = EXCLUDED.updated_at`

func (r *equipmentTrackingRepo) List(ctx context.Context) ([]domain.EquipmentTrackingRecord, error) {
	var out []domain.EquipmentTrackingRecord
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM equipment_tracking ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("equipmentTrackingRepo.List: %w", err)
	}
	return out, nil
}

func (r *equipmentTrackingRepo) Upsert(ctx context.Context, rec *domain.EquipmentTrackingRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, equipmentTrackingUpsert, rec); err != nil {
		return fmt.Errorf("equipmentTrackingRepo.Upsert: %w", err)
	}
	return nil
}

func (r *equipmentTrackingRepo) BulkUpsert(ctx context.Context, batch []domain.EquipmentTrackingRecord) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range batch {
		if batch[i].CreatedAt.IsZero() {
			batch[i].CreatedAt = now
		}
	}
	if _, err := r.db.NamedExecContext(ctx, equipmentTrackingUpsert, batch); err != nil {
		return fmt.Errorf("equipmentTrackingRepo.BulkUpsert: %w", err)
	}
	return nil
}

func (r *equipmentTrackingRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM equipment_tracking WHERE bl_no = $1", blNo)
	if err != nil {
		return 0, fmt.Errorf("equipmentTrackingRepo.DeleteByBL: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
