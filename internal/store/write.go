package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"porteo/internal/domain"
)

// batchLimit caps how many records go into a single repository batch. Batches
// are executed sequentially and commit independently: if batch N fails,
// batches 1..N-1 stay committed.
const batchLimit = 500

// BatchResult reports the outcome of a chunked bulk operation.
type BatchResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Batches   int `json:"batches"`
}

func upsertByID[T any](list []T, rec T, id func(T) uuid.UUID) []T {
	target := id(rec)
	for i := range list {
		if id(list[i]) == target {
			list[i] = rec
			return list
		}
	}
	return append(list, rec)
}

func removeWhere[T any](list []T, drop func(T) bool) []T {
	out := list[:0]
	for _, rec := range list {
		if !drop(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func chunk[T any](recs []T) [][]T {
	var out [][]T
	for len(recs) > batchLimit {
		out = append(out, recs[:batchLimit])
		recs = recs[batchLimit:]
	}
	if len(recs) > 0 {
		out = append(out, recs)
	}
	return out
}

// UpdateShipment upserts one shipment by id and stamps updated_at.
func (s *Store) UpdateShipment(ctx context.Context, rec *domain.Shipment) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.shipmentRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.shipments = upsertByID(s.shipments, *rec, func(x domain.Shipment) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionShipments)
	return nil
}

// UpdateCost upserts one cost record by id and stamps updated_at.
func (s *Store) UpdateCost(ctx context.Context, rec *domain.CostRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.costRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.costs = upsertByID(s.costs, *rec, func(x domain.CostRecord) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionCosts)
	return nil
}

// UpdatePreAlert upserts one pre-alert by id and stamps updated_at.
func (s *Store) UpdatePreAlert(ctx context.Context, rec *domain.PreAlertRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.preAlertRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.preAlerts = upsertByID(s.preAlerts, *rec, func(x domain.PreAlertRecord) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionPreAlerts)
	return nil
}

// UpdateVesselTracking upserts one vessel tracking row by id and stamps updated_at.
func (s *Store) UpdateVesselTracking(ctx context.Context, rec *domain.VesselTrackingRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.vesselRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.vessel = upsertByID(s.vessel, *rec, func(x domain.VesselTrackingRecord) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionVesselTracking)
	return nil
}

// UpdateCustomsClearance upserts one customs clearance row by id and stamps updated_at.
func (s *Store) UpdateCustomsClearance(ctx context.Context, rec *domain.CustomsClearanceRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.customsRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.customs = upsertByID(s.customs, *rec, func(x domain.CustomsClearanceRecord) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionCustomsClearance)
	return nil
}

// UpdateEquipmentTracking upserts one equipment row by id and stamps updated_at.
func (s *Store) UpdateEquipmentTracking(ctx context.Context, rec *domain.EquipmentTrackingRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.equipmentRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.equipment = upsertByID(s.equipment, *rec, func(x domain.EquipmentTrackingRecord) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionEquipmentTracking)
	return nil
}

// UpdateSupplier upserts one supplier by id and stamps updated_at.
func (s *Store) UpdateSupplier(ctx context.Context, rec *domain.Supplier) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.supplierRepo.Upsert(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.suppliers = upsertByID(s.suppliers, *rec, func(x domain.Supplier) uuid.UUID { return x.ID })
	s.mu.Unlock()
	s.notify(domain.CollectionSuppliers)
	return nil
}

// BulkUpsertCosts writes the records in sequential batches of at most
// batchLimit. On a batch failure the already-committed batches are not rolled
// back; the result reports how many records made it.
func (s *Store) BulkUpsertCosts(ctx context.Context, recs []domain.CostRecord) (BatchResult, error) {
	var res BatchResult
	now := time.Now().UTC()
	for i := range recs {
		if recs[i].ID == uuid.Nil {
			recs[i].ID = uuid.New()
		}
		recs[i].UpdatedAt = now
	}
	for _, batch := range chunk(recs) {
		res.Batches++
		if err := s.costRepo.BulkUpsert(ctx, batch); err != nil {
			res.Failed = len(recs) - res.Succeeded
			return res, fmt.Errorf("store.BulkUpsertCosts: batch %d failed after %d records: %w",
				res.Batches, res.Succeeded, err)
		}
		res.Succeeded += len(batch)
	}
	s.mu.Lock()
	for _, rec := range recs {
		s.costs = upsertByID(s.costs, rec, func(x domain.CostRecord) uuid.UUID { return x.ID })
	}
	s.mu.Unlock()
	s.notify(domain.CollectionCosts)
	return res, nil
}

// BulkUpsertVesselTracking writes vessel rows in sequential batches.
func (s *Store) BulkUpsertVesselTracking(ctx context.Context, recs []domain.VesselTrackingRecord) (BatchResult, error) {
	var res BatchResult
	now := time.Now().UTC()
	for i := range recs {
		if recs[i].ID == uuid.Nil {
			recs[i].ID = uuid.New()
		}
		recs[i].UpdatedAt = now
	}
	for _, batch := range chunk(recs) {
		res.Batches++
		if err := s.vesselRepo.BulkUpsert(ctx, batch); err != nil {
			res.Failed = len(recs) - res.Succeeded
			return res, fmt.Errorf("store.BulkUpsertVesselTracking: batch %d failed: %w", res.Batches, err)
		}
		res.Succeeded += len(batch)
	}
	s.mu.Lock()
	for _, rec := range recs {
		s.vessel = upsertByID(s.vessel, rec, func(x domain.VesselTrackingRecord) uuid.UUID { return x.ID })
	}
	s.mu.Unlock()
	s.notify(domain.CollectionVesselTracking)
	return res, nil
}

// BulkUpsertCustomsClearance writes customs rows in sequential batches.
func (s *Store) BulkUpsertCustomsClearance(ctx context.Context, recs []domain.CustomsClearanceRecord) (BatchResult, error) {
	var res BatchResult
	now := time.Now().UTC()
	for i := range recs {
		if recs[i].ID == uuid.Nil {
			recs[i].ID = uuid.New()
		}
		recs[i].UpdatedAt = now
	}
	for _, batch := range chunk(recs) {
		res.Batches++
		if err := s.customsRepo.BulkUpsert(ctx, batch); err != nil {
			res.Failed = len(recs) - res.Succeeded
			return res, fmt.Errorf("store.BulkUpsertCustomsClearance: batch %d failed: %w", res.Batches, err)
		}
		res.Succeeded += len(batch)
	}
	s.mu.Lock()
	for _, rec := range recs {
		s.customs = upsertByID(s.customs, rec, func(x domain.CustomsClearanceRecord) uuid.UUID { return x.ID })
	}
	s.mu.Unlock()
	s.notify(domain.CollectionCustomsClearance)
	return res, nil
}

// BulkUpsertEquipmentTracking writes equipment rows in sequential batches.
func (s *Store) BulkUpsertEquipmentTracking(ctx context.Context, recs []domain.EquipmentTrackingRecord) (BatchResult, error) {
	var res BatchResult
	now := time.Now().UTC()
	for i := range recs {
		if recs[i].ID == uuid.Nil {
			recs[i].ID = uuid.New()
		}
		recs[i].UpdatedAt = now
	}
	for _, batch := range chunk(recs) {
		res.Batches++
		if err := s.equipmentRepo.BulkUpsert(ctx, batch); err != nil {
			res.Failed = len(recs) - res.Succeeded
			return res, fmt.Errorf("store.BulkUpsertEquipmentTracking: batch %d failed: %w", res.Batches, err)
		}
		res.Succeeded += len(batch)
	}
	s.mu.Lock()
	for _, rec := range recs {
		s.equipment = upsertByID(s.equipment, rec, func(x domain.EquipmentTrackingRecord) uuid.UUID { return x.ID })
	}
	s.mu.Unlock()
	s.notify(domain.CollectionEquipmentTracking)
	return res, nil
}

// DeleteCost removes one cost record.
func (s *Store) DeleteCost(ctx context.Context, id uuid.UUID) error {
	if err := s.costRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.costs = removeWhere(s.costs, func(x domain.CostRecord) bool { return x.ID == id })
	s.mu.Unlock()
	s.notify(domain.CollectionCosts)
	return nil
}

// BatchDeleteCosts removes the given cost ids in sequential batches. Deletions
// are idempotent; a mid-batch failure leaves earlier batches committed and is
// reported alongside the partial-success count.
func (s *Store) BatchDeleteCosts(ctx context.Context, ids []uuid.UUID) (BatchResult, error) {
	var res BatchResult
	deleted := make(map[uuid.UUID]bool, len(ids))
	for _, batch := range chunk(ids) {
		res.Batches++
		if _, err := s.costRepo.BatchDelete(ctx, batch); err != nil {
			res.Failed = len(ids) - res.Succeeded
			s.applyCostDeletes(deleted)
			return res, fmt.Errorf("store.BatchDeleteCosts: batch %d failed after %d deletions: %w",
				res.Batches, res.Succeeded, err)
		}
		for _, id := range batch {
			deleted[id] = true
		}
		res.Succeeded += len(batch)
	}
	s.applyCostDeletes(deleted)
	return res, nil
}

func (s *Store) applyCostDeletes(deleted map[uuid.UUID]bool) {
	if len(deleted) == 0 {
		return
	}
	s.mu.Lock()
	s.costs = removeWhere(s.costs, func(x domain.CostRecord) bool { return deleted[x.ID] })
	s.mu.Unlock()
	s.notify(domain.CollectionCosts)
}

// DeleteSupplier removes one supplier.
func (s *Store) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.suppliers = removeWhere(s.suppliers, func(x domain.Supplier) bool { return x.ID == id })
	s.mu.Unlock()
	s.notify(domain.CollectionSuppliers)
	return nil
}

// DeletePreAlert removes one pre-alert row.
func (s *Store) DeletePreAlert(ctx context.Context, id uuid.UUID) error {
	if err := s.preAlertRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.preAlerts = removeWhere(s.preAlerts, func(x domain.PreAlertRecord) bool { return x.ID == id })
	s.mu.Unlock()
	s.notify(domain.CollectionPreAlerts)
	return nil
}

// DeletePreAlertsByBooking removes every pre-alert with the exact booking reference.
func (s *Store) DeletePreAlertsByBooking(ctx context.Context, bookingAbw string) (int64, error) {
	n, err := s.preAlertRepo.DeleteByBooking(ctx, bookingAbw)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.preAlerts = removeWhere(s.preAlerts, func(x domain.PreAlertRecord) bool { return x.BookingAbw == bookingAbw })
	s.mu.Unlock()
	s.notify(domain.CollectionPreAlerts)
	return n, nil
}

// DeleteShipmentsByBL removes every shipment with the exact BL.
func (s *Store) DeleteShipmentsByBL(ctx context.Context, blNo string) (int64, error) {
	n, err := s.shipmentRepo.DeleteByBL(ctx, blNo)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.shipments = removeWhere(s.shipments, func(x domain.Shipment) bool { return x.BLNo == blNo })
	s.mu.Unlock()
	s.notify(domain.CollectionShipments)
	return n, nil
}

// DeleteVesselTrackingByBL removes every vessel row with the exact BL.
func (s *Store) DeleteVesselTrackingByBL(ctx context.Context, blNo string) (int64, error) {
	n, err := s.vesselRepo.DeleteByBL(ctx, blNo)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.vessel = removeWhere(s.vessel, func(x domain.VesselTrackingRecord) bool { return x.BLNo == blNo })
	s.mu.Unlock()
	s.notify(domain.CollectionVesselTracking)
	return n, nil
}

// DeleteCustomsClearanceByBL removes every customs row with the exact BL.
func (s *Store) DeleteCustomsClearanceByBL(ctx context.Context, blNo string) (int64, error) {
	n, err := s.customsRepo.DeleteByBL(ctx, blNo)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.customs = removeWhere(s.customs, func(x domain.CustomsClearanceRecord) bool { return x.BLNo == blNo })
	s.mu.Unlock()
	s.notify(domain.CollectionCustomsClearance)
	return n, nil
}

// DeleteEquipmentTrackingByBL removes every equipment row with the exact BL.
func (s *Store) DeleteEquipmentTrackingByBL(ctx context.Context, blNo string) (int64, error) {
	n, err := s.equipmentRepo.DeleteByBL(ctx, blNo)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.equipment = removeWhere(s.equipment, func(x domain.EquipmentTrackingRecord) bool { return x.BLNo == blNo })
	s.mu.Unlock()
	s.notify(domain.CollectionEquipmentTracking)
	return n, nil
}
