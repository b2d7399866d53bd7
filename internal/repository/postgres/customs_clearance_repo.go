package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"porteo/internal/domain"
	"porteo/internal/port"
)

type customsClearanceRepo struct {
	db *sqlx.DB
}

// NewCustomsClearanceRepo creates a new PostgreSQL-backed CustomsClearanceRepository.
func NewCustomsClearanceRepo(db *sqlx.DB) port.CustomsClearanceRepository {
	return &customsClearanceRepo{db: db}
}

const customsClearanceUpsert = `INSERT INTO customs_clearance (
	id, bl_no, container_no, pedimento_no, customs_broker,
	review_date, authorization_date, eta, model, invoice_no,
	quantity, project_type, contract_no, created_at, updated_at
) VALUES (
	:id, :bl_no, :container_no, :pedimento_no, :customs_broker,
	:review_date, :authorization_date, :eta, :model, :invoice_no,
	:quantity, :project_type, :contract_no, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	bl_no = EXCLUDED.bl_no, container_no = EXCLUDED.container_no,
	pedimento_no = EXCLUDED.pedimento_no, customs_broker = EXCLUDED.customs_broker,
	review_date = EXCLUDED.review_date,
	authorization_date = EXCLUDED.authorization_date,
	eta = EXCLUDED.eta, model = EXCLUDED.model,
	invoice_no = EXCLUDED.invoice_no, quantity = EXCLUDED.quantity,
	project_type = EXCLUDED.project_type, contract_no = EXCLUDED.contract_no,
	updated_at = EXCLUDED.updated_at`

func (r *customsClearanceRepo) List(ctx context.Context) ([]domain.CustomsClearanceRecord, error) {
	var out []domain.CustomsClearanceRecord
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM customs_clearance ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("customsClearanceRepo.List: %w", err)
	}
	return out, nil
}

func (r *customsClearanceRepo) Upsert(ctx context.Context, rec *domain.CustomsClearanceRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, customsClearanceUpsert, rec); err != nil {
		return fmt.Errorf("customsClearanceRepo.Upsert: %w", err)
	}
	return nil
}

func (r *customsClearanceRepo) BulkUpsert(ctx context.Context, batch []domain.CustomsClearanceRecord) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range batch {
		if batch[i].CreatedAt.IsZero() {
			batch[i].CreatedAt = now
		}
	}
	if _, err := r.db.NamedExecContext(ctx, customsClearanceUpsert, batch); err != nil {
		return fmt.Errorf("customsClearanceRepo.BulkUpsert: %w", err)
	}
	return nil
}

func (r *customsClearanceRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customs_clearance WHERE bl_no = $1", blNo)
	if err != nil {
		return 0, fmt.Errorf("customsClearanceRepo.DeleteByBL: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
