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

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

const supplierUpsert = `INSERT INTO suppliers (
	id, name, rfc, quotations, created_at, updated_at
) VALUES (
	:id, :name, :rfc, :quotations, :created_at, :updated_at
) ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name, rfc = EXCLUDED.rfc,
	quotations = EXCLUDED.quotations, updated_at = EXCLUDED.updated_at`

func (r *supplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM suppliers ORDER BY name"); err != nil {
		return nil, fmt.Errorf("supplierRepo.List: %w", err)
	}
	return out, nil
}

func (r *supplierRepo) Upsert(ctx context.Context, s *domain.Supplier) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, supplierUpsert, s); err != nil {
		return fmt.Errorf("supplierRepo.Upsert: %w", err)
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("supplierRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
