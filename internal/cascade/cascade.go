// Package cascade keeps the five booking-derived collections consistent when
// a booking is created, re-extracted, edited, or deleted.
//
// Per-container rows are deleted and recreated on every re-extraction instead
// of diffed in place: container sets are not stable across extractions, so a
// patch-based reconciliation cannot be done safely. Manual fields survive via
// a template captured from the first existing row.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"porteo/internal/domain"
	"porteo/internal/ident"
	"porteo/internal/store"
)

// Propagator fans booking-level changes out to the dependent collections.
type Propagator struct {
	store *store.Store
}

// New creates a Propagator over the given store.
func New(st *store.Store) *Propagator {
	return &Propagator{store: st}
}

// ExtractionInput is one processed booking extraction.
type ExtractionInput struct {
	PreAlert        domain.PreAlertRecord
	Containers      []string
	CreateEquipment bool
}

// ProcessExtraction upserts the pre-alert, recreates the per-container vessel
// and customs rows, upserts the shipment, and optionally regenerates the
// equipment rows. Each collection is written independently: a failure part way
// through is returned to the caller but collections already written stay
// applied.
func (p *Propagator) ProcessExtraction(ctx context.Context, in ExtractionInput) (*domain.PreAlertRecord, error) {
	normBL := ident.Normalize(in.PreAlert.BookingAbw)
	if normBL == "" {
		return nil, domain.ErrMissingBooking
	}

	merged := p.upsertPreAlert(&in.PreAlert, in.Containers, normBL)
	if err := p.store.UpdatePreAlert(ctx, merged); err != nil {
		return nil, fmt.Errorf("cascade.ProcessExtraction: pre-alert for %s: %w", in.PreAlert.BookingAbw, err)
	}
	blNo := merged.BookingAbw

	if err := p.recreateVesselRows(ctx, blNo, normBL, merged, in.Containers); err != nil {
		log.Printf("cascade.ProcessExtraction: vessel tracking for %s failed, pre-alert already applied: %v", blNo, err)
		return merged, err
	}
	if err := p.recreateCustomsRows(ctx, blNo, normBL, merged, in.Containers); err != nil {
		log.Printf("cascade.ProcessExtraction: customs clearance for %s failed, earlier collections already applied: %v", blNo, err)
		return merged, err
	}
	if err := p.upsertShipment(ctx, blNo, normBL, merged, in.Containers); err != nil {
		log.Printf("cascade.ProcessExtraction: shipment for %s failed, earlier collections already applied: %v", blNo, err)
		return merged, err
	}
	if in.CreateEquipment {
		if err := p.recreateEquipmentRows(ctx, blNo, normBL, in.Containers); err != nil {
			log.Printf("cascade.ProcessExtraction: equipment tracking for %s failed, earlier collections already applied: %v", blNo, err)
			return merged, err
		}
	}
	return merged, nil
}

// upsertPreAlert merges the extraction into the existing pre-alert matched on
// the normalized booking reference, or starts a fresh record.
func (p *Propagator) upsertPreAlert(src *domain.PreAlertRecord, containers []string, normBL string) *domain.PreAlertRecord {
	for _, existing := range p.store.PreAlerts() {
		if ident.Normalize(existing.BookingAbw) == normBL {
			merged := existing
			mergePreAlert(&merged, src)
			merged.LinkedContainers = append(domain.StringList(nil), containers...)
			return &merged
		}
	}
	fresh := *src
	fresh.ID = uuid.New()
	fresh.LinkedContainers = append(domain.StringList(nil), containers...)
	return &fresh
}

func (p *Propagator) recreateVesselRows(ctx context.Context, blNo, normBL string, pa *domain.PreAlertRecord, containers []string) error {
	var existing []domain.VesselTrackingRecord
	for _, row := range p.store.VesselTracking() {
		if ident.Normalize(row.BLNo) == normBL {
			existing = append(existing, row)
		}
	}
	tmpl := captureVesselTemplate(existing)

	for _, bl := range distinctBLs(existing, blNo, func(r domain.VesselTrackingRecord) string { return r.BLNo }) {
		if _, err := p.store.DeleteVesselTrackingByBL(ctx, bl); err != nil {
			return fmt.Errorf("deleting vessel rows for %s: %w", bl, err)
		}
	}

	names := containers
	if len(names) == 0 {
		names = []string{fallbackContainerSea}
	}
	rows := make([]domain.VesselTrackingRecord, 0, len(names))
	for _, c := range names {
		rec := domain.VesselTrackingRecord{
			ID:          uuid.New(),
			BLNo:        blNo,
			ContainerNo: c,
			POL:         pa.POL,
			POD:         pa.POD,
			ETD:         pa.ETD,
			ETA:         pa.ETA,
			Model:       pa.Model,
			InvoiceNo:   pa.InvoiceNo,
		}
		tmpl.apply(&rec)
		rows = append(rows, rec)
	}
	if _, err := p.store.BulkUpsertVesselTracking(ctx, rows); err != nil {
		return fmt.Errorf("recreating vessel rows for %s: %w", blNo, err)
	}
	return nil
}

func (p *Propagator) recreateCustomsRows(ctx context.Context, blNo, normBL string, pa *domain.PreAlertRecord, containers []string) error {
	var existing []domain.CustomsClearanceRecord
	for _, row := range p.store.CustomsClearance() {
		if ident.Normalize(row.BLNo) == normBL {
			existing = append(existing, row)
		}
	}
	tmpl := captureCustomsTemplate(existing)

	for _, bl := range distinctBLs(existing, blNo, func(r domain.CustomsClearanceRecord) string { return r.BLNo }) {
		if _, err := p.store.DeleteCustomsClearanceByBL(ctx, bl); err != nil {
			return fmt.Errorf("deleting customs rows for %s: %w", bl, err)
		}
	}

	names := containers
	if len(names) == 0 {
		names = []string{fallbackContainerSea}
	}
	rows := make([]domain.CustomsClearanceRecord, 0, len(names))
	for _, c := range names {
		rec := domain.CustomsClearanceRecord{
			ID:          uuid.New(),
			BLNo:        blNo,
			ContainerNo: c,
			ETA:         pa.ETA,
			Model:       pa.Model,
			InvoiceNo:   pa.InvoiceNo,
		}
		tmpl.apply(&rec)
		rows = append(rows, rec)
	}
	if _, err := p.store.BulkUpsertCustomsClearance(ctx, rows); err != nil {
		return fmt.Errorf("recreating customs rows for %s: %w", blNo, err)
	}
	return nil
}

// upsertShipment writes exactly one shipment keyed by BL. A first extraction
// creates it as planned; a re-extraction preserves status and freight cost and
// only overwrites route, date, and container fields.
func (p *Propagator) upsertShipment(ctx context.Context, blNo, normBL string, pa *domain.PreAlertRecord, containers []string) error {
	shipment := domain.Shipment{
		ID:          uuid.New(),
		Status:      domain.ShipmentStatusPlanned,
		FreightCost: decimal.Zero,
	}
	for _, existing := range p.store.Shipments() {
		if ident.Normalize(existing.BLNo) == normBL {
			shipment = existing
			break
		}
	}
	shipment.BLNo = blNo
	shipment.Containers = append(domain.StringList(nil), containers...)
	shipment.Origin = pa.POL
	shipment.Destination = pa.POD
	shipment.ETD = pa.ETD
	shipment.ETA = pa.ETA
	if err := p.store.UpdateShipment(ctx, &shipment); err != nil {
		return fmt.Errorf("upserting shipment for %s: %w", blNo, err)
	}
	return nil
}

// recreateEquipmentRows regenerates the equipment rows for a BL. Equipment
// rows carry no manual fields, so no template is captured.
func (p *Propagator) recreateEquipmentRows(ctx context.Context, blNo, normBL string, containers []string) error {
	var existing []domain.EquipmentTrackingRecord
	for _, row := range p.store.EquipmentTracking() {
		if ident.Normalize(row.BLNo) == normBL {
			existing = append(existing, row)
		}
	}
	for _, bl := range distinctBLs(existing, blNo, func(r domain.EquipmentTrackingRecord) string { return r.BLNo }) {
		if _, err := p.store.DeleteEquipmentTrackingByBL(ctx, bl); err != nil {
			return fmt.Errorf("deleting equipment rows for %s: %w", bl, err)
		}
	}

	names := containers
	if len(names) == 0 {
		names = []string{fallbackContainerEquipment}
	}
	rows := make([]domain.EquipmentTrackingRecord, 0, len(names))
	for _, c := range names {
		rows = append(rows, domain.EquipmentTrackingRecord{
			ID:          uuid.New(),
			BLNo:        blNo,
			ContainerNo: c,
		})
	}
	if _, err := p.store.BulkUpsertEquipmentTracking(ctx, rows); err != nil {
		return fmt.Errorf("recreating equipment rows for %s: %w", blNo, err)
	}
	return nil
}

// distinctBLs collects the raw BL values present on the matched rows plus the
// canonical one, so a delete also catches rows stored under a formatting
// variant of the same BL.
func distinctBLs[T any](rows []T, canonical string, bl func(T) string) []string {
	seen := map[string]bool{canonical: true}
	out := []string{canonical}
	for _, row := range rows {
		if v := bl(row); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// DeleteBooking removes the pre-alert and every vessel, customs, shipment,
// and equipment row whose BL equals the target exactly. Deletes run per
// collection; a failure in one collection does not stop the others and does
// not revert the ones already done.
func (p *Propagator) DeleteBooking(ctx context.Context, blNo string) error {
	if blNo == "" {
		return domain.ErrMissingBooking
	}

	var errs []error
	var total int64

	n, err := p.store.DeletePreAlertsByBooking(ctx, blNo)
	if err != nil {
		log.Printf("cascade.DeleteBooking: pre-alerts for %s: %v", blNo, err)
		errs = append(errs, fmt.Errorf("pre-alerts: %w", err))
	}
	total += n

	n, err = p.store.DeleteVesselTrackingByBL(ctx, blNo)
	if err != nil {
		log.Printf("cascade.DeleteBooking: vessel tracking for %s: %v", blNo, err)
		errs = append(errs, fmt.Errorf("vessel tracking: %w", err))
	}
	total += n

	n, err = p.store.DeleteCustomsClearanceByBL(ctx, blNo)
	if err != nil {
		log.Printf("cascade.DeleteBooking: customs clearance for %s: %v", blNo, err)
		errs = append(errs, fmt.Errorf("customs clearance: %w", err))
	}
	total += n

	n, err = p.store.DeleteShipmentsByBL(ctx, blNo)
	if err != nil {
		log.Printf("cascade.DeleteBooking: shipments for %s: %v", blNo, err)
		errs = append(errs, fmt.Errorf("shipments: %w", err))
	}
	total += n

	n, err = p.store.DeleteEquipmentTrackingByBL(ctx, blNo)
	if err != nil {
		log.Printf("cascade.DeleteBooking: equipment tracking for %s: %v", blNo, err)
		errs = append(errs, fmt.Errorf("equipment tracking: %w", err))
	}
	total += n

	if len(errs) > 0 {
		return fmt.Errorf("cascade.DeleteBooking %s: %w", blNo, errors.Join(errs...))
	}
	if total == 0 {
		return domain.ErrBookingNotFound
	}
	log.Printf("cascade.DeleteBooking: removed %d rows for %s", total, blNo)
	return nil
}

// BroadcastVesselSharedFields propagates the shared fields of the edited row
// to every other vessel tracking row with the same BL. It returns how many
// sibling rows were updated.
func (p *Propagator) BroadcastVesselSharedFields(ctx context.Context, src *domain.VesselTrackingRecord) (int, error) {
	var siblings []domain.VesselTrackingRecord
	for _, row := range p.store.VesselTracking() {
		if row.BLNo == src.BLNo && row.ID != src.ID {
			applyVesselSharedFields(&row, src)
			siblings = append(siblings, row)
		}
	}
	if len(siblings) == 0 {
		return 0, nil
	}
	if _, err := p.store.BulkUpsertVesselTracking(ctx, siblings); err != nil {
		return 0, fmt.Errorf("cascade.BroadcastVesselSharedFields for %s: %w", src.BLNo, err)
	}
	return len(siblings), nil
}

// BroadcastCustomsSharedFields propagates the shared fields of the edited row
// to every other customs clearance row with the same BL.
func (p *Propagator) BroadcastCustomsSharedFields(ctx context.Context, src *domain.CustomsClearanceRecord) (int, error) {
	var siblings []domain.CustomsClearanceRecord
	for _, row := range p.store.CustomsClearance() {
		if row.BLNo == src.BLNo && row.ID != src.ID {
			applyCustomsSharedFields(&row, src)
			siblings = append(siblings, row)
		}
	}
	if len(siblings) == 0 {
		return 0, nil
	}
	if _, err := p.store.BulkUpsertCustomsClearance(ctx, siblings); err != nil {
		return 0, fmt.Errorf("cascade.BroadcastCustomsSharedFields for %s: %w", src.BLNo, err)
	}
	return len(siblings), nil
}
