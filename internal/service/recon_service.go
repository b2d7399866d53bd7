package service

import (
	"context"

	"porteo/internal/domain"
	"porteo/internal/recon"
	"porteo/internal/store"
)

// ReconService builds the reconciliation view over the current snapshots.
type ReconService interface {
	Rows(ctx context.Context) []recon.Row
	RowsByType(ctx context.Context, costType domain.CostType) []recon.Row
	ResolveShipment(ctx context.Context, containerStr, requiredBL string) recon.Resolved
	Duplicates(ctx context.Context) []recon.DuplicateGroup
}

type reconService struct {
	store *store.Store
}

// NewReconService creates a new ReconService implementation.
func NewReconService(st *store.Store) ReconService {
	return &reconService{store: st}
}

func (s *reconService) engine() *recon.Engine {
	return recon.NewEngine(s.store.Shipments(), s.store.PreAlerts(), s.store.Suppliers())
}

func (s *reconService) Rows(ctx context.Context) []recon.Row {
	return s.engine().BuildRows(s.store.Costs())
}

func (s *reconService) RowsByType(ctx context.Context, costType domain.CostType) []recon.Row {
	var costs []domain.CostRecord
	for _, c := range s.store.Costs() {
		if c.Type == costType {
			costs = append(costs, c)
		}
	}
	return s.engine().BuildRows(costs)
}

func (s *reconService) ResolveShipment(ctx context.Context, containerStr, requiredBL string) recon.Resolved {
	return s.engine().Resolver().ResolveShipmentInfo(containerStr, nil, requiredBL)
}

func (s *reconService) Duplicates(ctx context.Context) []recon.DuplicateGroup {
	return recon.FindDuplicates(s.store.Costs())
}
