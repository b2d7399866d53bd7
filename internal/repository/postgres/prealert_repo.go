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

type preAlertRepo struct {
	db *sqlx.DB
}

// NewPreAlertRepo creates a new PostgreSQL-backed PreAlertRepository.
func NewPreAlertRepo(db *sqlx.DB) port.PreAlertRepository {
	return &preAlertRepo{db: db}
}

const preAlertUpsert = `INSERT INTO pre_alerts (
	id, booking_abw, linked_containers, model, invoice_no, shipping_line,
	pol, pod, etd, eta, created_at, updated_at
) VALUES (
	:id, :booking_abw, :linked_containers, :model, :invoice_no, :shipping_line,
	:pol, :pod, :etd, :eta, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	booking_abw = EXCLUDED.booking_abw,
	linked_containers = EXCLUDED.linked_containers,
	model = EXCLUDED.model, invoice_no = EXCLUDED.invoice_no,
	shipping_line = EXCLUDED.shipping_line,
	pol = EXCLUDED.pol, pod = EXCLUDED.pod,
	etd = EXCLUDED.etd, eta = EXCLUDED.eta,
	updated_at = EXCLUDED.updated_at`

func (r *preAlertRepo) List(ctx context.Context) ([]domain.PreAlertRecord, error) {
	var out []domain.PreAlertRecord
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM pre_alerts ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("preAlertRepo.List: %w", err)
	}
	return out, nil
}

func (r *preAlertRepo) Upsert(ctx context.Context, p *domain.PreAlertRecord) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, preAlertUpsert, p); err != nil {
		return fmt.Errorf("preAlertRepo.Upsert: %w", err)
	}
	return nil
}

func (r *preAlertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pre_alerts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("preAlertRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPreAlertNotFound
	}
	return nil
}

func (r *preAlertRepo) DeleteByBooking(ctx context.Context, bookingAbw string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pre_alerts WHERE booking_abw = $1", bookingAbw)
	if err != nil {
		return 0, fmt.Errorf("preAlertRepo.DeleteByBooking: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
