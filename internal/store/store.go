// Package store holds the in-memory snapshot of every record collection and
// mediates all writes to the backing repositories. Reads are synchronous
// snapshot copies; writes persist first, then mutate the snapshot, then fan
// out to subscribers. There is no locking across clients: concurrent edits are
// resolved last-write-wins by updated_at at refresh time.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"porteo/internal/domain"
	"porteo/internal/port"
)

// Store owns the record snapshots and the observer list.
type Store struct {
	shipmentRepo  port.ShipmentRepository
	costRepo      port.CostRepository
	preAlertRepo  port.PreAlertRepository
	vesselRepo    port.VesselTrackingRepository
	customsRepo   port.CustomsClearanceRepository
	equipmentRepo port.EquipmentTrackingRepository
	supplierRepo  port.SupplierRepository

	mu        sync.RWMutex
	shipments []domain.Shipment
	costs     []domain.CostRecord
	preAlerts []domain.PreAlertRecord
	vessel    []domain.VesselTrackingRecord
	customs   []domain.CustomsClearanceRecord
	equipment []domain.EquipmentTrackingRecord
	suppliers []domain.Supplier

	subMu   sync.Mutex
	subs    map[int]func(domain.Collection)
	nextSub int
}

// New creates a Store over the given repositories. Call Load before first use.
func New(
	shipmentRepo port.ShipmentRepository,
	costRepo port.CostRepository,
	preAlertRepo port.PreAlertRepository,
	vesselRepo port.VesselTrackingRepository,
	customsRepo port.CustomsClearanceRepository,
	equipmentRepo port.EquipmentTrackingRepository,
	supplierRepo port.SupplierRepository,
) *Store {
	return &Store{
		shipmentRepo:  shipmentRepo,
		costRepo:      costRepo,
		preAlertRepo:  preAlertRepo,
		vesselRepo:    vesselRepo,
		customsRepo:   customsRepo,
		equipmentRepo: equipmentRepo,
		supplierRepo:  supplierRepo,
		subs:          make(map[int]func(domain.Collection)),
	}
}

// Load replaces every snapshot with the current repository contents.
func (s *Store) Load(ctx context.Context) error {
	shipments, err := s.shipmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load shipments: %w", err)
	}
	costs, err := s.costRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load costs: %w", err)
	}
	preAlerts, err := s.preAlertRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load pre-alerts: %w", err)
	}
	vessel, err := s.vesselRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load vessel tracking: %w", err)
	}
	customs, err := s.customsRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load customs clearance: %w", err)
	}
	equipment, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load equipment tracking: %w", err)
	}
	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Load suppliers: %w", err)
	}

	s.mu.Lock()
	s.shipments = shipments
	s.costs = costs
	s.preAlerts = preAlerts
	s.vessel = vessel
	s.customs = customs
	s.equipment = equipment
	s.suppliers = suppliers
	s.mu.Unlock()
	return nil
}

// Refresh reloads every collection and merges it into the local snapshot
// last-write-wins: for a record present on both sides, the higher updated_at
// survives. This is how edits from other clients converge without locking.
func (s *Store) Refresh(ctx context.Context) error {
	shipments, err := s.shipmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh shipments: %w", err)
	}
	costs, err := s.costRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh costs: %w", err)
	}
	preAlerts, err := s.preAlertRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh pre-alerts: %w", err)
	}
	vessel, err := s.vesselRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh vessel tracking: %w", err)
	}
	customs, err := s.customsRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh customs clearance: %w", err)
	}
	equipment, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh equipment tracking: %w", err)
	}
	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("store.Refresh suppliers: %w", err)
	}

	s.mu.Lock()
	s.shipments = mergeLWW(s.shipments, shipments,
		func(x domain.Shipment) uuid.UUID { return x.ID },
		func(x domain.Shipment) time.Time { return x.UpdatedAt })
	s.costs = mergeLWW(s.costs, costs,
		func(x domain.CostRecord) uuid.UUID { return x.ID },
		func(x domain.CostRecord) time.Time { return x.UpdatedAt })
	s.preAlerts = mergeLWW(s.preAlerts, preAlerts,
		func(x domain.PreAlertRecord) uuid.UUID { return x.ID },
		func(x domain.PreAlertRecord) time.Time { return x.UpdatedAt })
	s.vessel = mergeLWW(s.vessel, vessel,
		func(x domain.VesselTrackingRecord) uuid.UUID { return x.ID },
		func(x domain.VesselTrackingRecord) time.Time { return x.UpdatedAt })
	s.customs = mergeLWW(s.customs, customs,
		func(x domain.CustomsClearanceRecord) uuid.UUID { return x.ID },
		func(x domain.CustomsClearanceRecord) time.Time { return x.UpdatedAt })
	s.equipment = mergeLWW(s.equipment, equipment,
		func(x domain.EquipmentTrackingRecord) uuid.UUID { return x.ID },
		func(x domain.EquipmentTrackingRecord) time.Time { return x.UpdatedAt })
	s.suppliers = mergeLWW(s.suppliers, suppliers,
		func(x domain.Supplier) uuid.UUID { return x.ID },
		func(x domain.Supplier) time.Time { return x.UpdatedAt })
	s.mu.Unlock()
	return nil
}

// mergeLWW returns the incoming list with any locally-newer record substituted
// in place. Records that exist only locally are dropped: the repository is the
// source of truth for membership, the timestamp only arbitrates field content.
func mergeLWW[T any](local, incoming []T, id func(T) uuid.UUID, updated func(T) time.Time) []T {
	if len(local) == 0 {
		return incoming
	}
	byID := make(map[uuid.UUID]T, len(local))
	for _, rec := range local {
		byID[id(rec)] = rec
	}
	out := make([]T, 0, len(incoming))
	for _, rec := range incoming {
		if loc, ok := byID[id(rec)]; ok && updated(loc).After(updated(rec)) {
			out = append(out, loc)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Subscribe registers a callback invoked synchronously after every local
// mutation with the collection that changed. The returned function removes
// the subscription. Callbacks must not assume ordering across collections.
func (s *Store) Subscribe(fn func(domain.Collection)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(c domain.Collection) {
	s.subMu.Lock()
	fns := make([]func(domain.Collection), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Shipments returns a copy of the current shipment snapshot.
func (s *Store) Shipments() []domain.Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Shipment(nil), s.shipments...)
}

// Costs returns a copy of the current cost snapshot.
func (s *Store) Costs() []domain.CostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CostRecord(nil), s.costs...)
}

// PreAlerts returns a copy of the current pre-alert snapshot.
func (s *Store) PreAlerts() []domain.PreAlertRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PreAlertRecord(nil), s.preAlerts...)
}

// VesselTracking returns a copy of the current vessel tracking snapshot.
func (s *Store) VesselTracking() []domain.VesselTrackingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.VesselTrackingRecord(nil), s.vessel...)
}

// CustomsClearance returns a copy of the current customs clearance snapshot.
func (s *Store) CustomsClearance() []domain.CustomsClearanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CustomsClearanceRecord(nil), s.customs...)
}

// EquipmentTracking returns a copy of the current equipment tracking snapshot.
func (s *Store) EquipmentTracking() []domain.EquipmentTrackingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.EquipmentTrackingRecord(nil), s.equipment...)
}

// Suppliers returns a copy of the current supplier snapshot.
func (s *Store) Suppliers() []domain.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Supplier(nil), s.suppliers...)
}
