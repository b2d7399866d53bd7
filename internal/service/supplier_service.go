package service

import (
	"context"

	"github.com/google/uuid"

	"porteo/internal/domain"
	"porteo/internal/store"
)

// SupplierService manages the supplier catalog and its quotations.
type SupplierService interface {
	List(ctx context.Context) []domain.Supplier
	Upsert(ctx context.Context, rec *domain.Supplier) (*domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	store *store.Store
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(st *store.Store) SupplierService {
	return &supplierService{store: st}
}

func (s *supplierService) List(ctx context.Context) []domain.Supplier {
	return s.store.Suppliers()
}

func (s *supplierService) Upsert(ctx context.Context, rec *domain.Supplier) (*domain.Supplier, error) {
	if err := s.store.UpdateSupplier(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	for _, sup := range s.store.Suppliers() {
		if sup.ID == id {
			return s.store.DeleteSupplier(ctx, id)
		}
	}
	return domain.ErrSupplierNotFound
}
