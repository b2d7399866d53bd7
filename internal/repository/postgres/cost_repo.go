package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"porteo/internal/domain"
	"porteo/internal/port"
)

type costRepo struct {
	db *sqlx.DB
}

// NewCostRepo creates a new PostgreSQL-backed CostRepository.
func NewCostRepo(db *sqlx.DB) port.CostRepository {
	return &costRepo{db: db}
}

const costUpsert = `INSERT INTO costs (
	id, shipment_id, extracted_bl, linked_container, uuid, invoice_no,
	description, provider, amount, currency, type, status,
	bpm, submit_date, payment_date, comments, created_at, updated_at
) VALUES (
	:id, :shipment_id, :extracted_bl, :linked_container, :uuid, :invoice_no,
	:description, :provider, :amount, :currency, :type, :status,
	:bpm, :submit_date, :payment_date, :comments, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	shipment_id = EXCLUDED.shipment_id, extracted_bl = EXCLUDED.extracted_bl,
	linked_container = EXCLUDED.linked_container, uuid = EXCLUDED.uuid,
	invoice_no = EXCLUDED.invoice_no, description = EXCLUDED.description,
	provider = EXCLUDED.provider, amount = EXCLUDED.amount,
	currency = EXCLUDED.currency, type = EXCLUDED.type,
	status = EXCLUDED.status, bpm = EXCLUDED.bpm,
	submit_date = EXCLUDED.submit_date, payment_date = EXCLUDED.payment_date,
	comments = EXCLUDED.comments, updated_at = EXCLUDED.updated_at`

func (r *costRepo) List(ctx context.Context) ([]domain.CostRecord, error) {
	var out []domain.CostRecord
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM costs ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("costRepo.List: %w", err)
	}
	return out, nil
}

func (r *costRepo) Upsert(ctx context.Context, c *domain.CostRecord) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, costUpsert, c); err != nil {
		return fmt.Errorf("costRepo.Upsert: %w", err)
	}
	return nil
}

func (r *costRepo) BulkUpsert(ctx context.Context, batch []domain.CostRecord) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range batch {
		if batch[i].CreatedAt.IsZero() {
			batch[i].CreatedAt = now
		}
	}
	if _, err := r.db.NamedExecContext(ctx, costUpsert, batch); err != nil {
		return fmt.Errorf("costRepo.BulkUpsert: %w", err)
	}
	return nil
}

func (r *costRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM costs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("costRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCostNotFound
	}
	return nil
}

func (r *costRepo) BatchDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM costs WHERE id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("costRepo.BatchDelete: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("costRepo.BatchDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
