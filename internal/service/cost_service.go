package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"porteo/internal/csvimport"
	"porteo/internal/domain"
	"porteo/internal/port"
	"porteo/internal/recon"
	"porteo/internal/store"
)

// DedupReport summarizes one duplicate-resolution run.
type DedupReport struct {
	Groups  []recon.DuplicateGroup `json:"groups"`
	Removed int                    `json:"removed"`
}

// ImportReport summarizes one CSV import.
type ImportReport struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// CostService manages cost records: writes with ingestion-time duplicate
// reuse, CSV and document import, shipment linking, and batch duplicate
// resolution.
type CostService interface {
	List(ctx context.Context) []domain.CostRecord
	Upsert(ctx context.Context, rec *domain.CostRecord) (*domain.CostRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Link(ctx context.Context, costID, shipmentID uuid.UUID) (*domain.CostRecord, error)
	Unlink(ctx context.Context, costID uuid.UUID) (*domain.CostRecord, error)
	ImportCSV(ctx context.Context, r io.Reader, costType domain.CostType) (*ImportReport, error)
	ImportDocument(ctx context.Context, content []byte, contentType string, costType domain.CostType) (*domain.CostRecord, error)
	RunDedup(ctx context.Context) (*DedupReport, error)
}

type costService struct {
	store     *store.Store
	extractor port.DocumentExtractor
}

// NewCostService creates a new CostService implementation.
func NewCostService(st *store.Store, extractor port.DocumentExtractor) CostService {
	return &costService{store: st, extractor: extractor}
}

func (s *costService) List(ctx context.Context) []domain.CostRecord {
	return s.store.Costs()
}

// Upsert validates the record and writes it. A new record that matches an
// existing one under the ingestion duplicate rule takes over the existing
// record's identity instead of creating a second row.
func (s *costService) Upsert(ctx context.Context, rec *domain.CostRecord) (*domain.CostRecord, error) {
	if err := validateCost(rec); err != nil {
		return nil, err
	}

	if rec.ID == uuid.Nil {
		if dup := recon.FindIngestionDuplicate(s.store.Costs(), rec); dup != nil {
			log.Printf("costService.Upsert: invoice %q matches existing cost %s, reusing id", rec.InvoiceNo, dup.ID)
			rec.ID = dup.ID
			rec.CreatedAt = dup.CreatedAt
			if !rec.Linked() {
				rec.ShipmentID = dup.ShipmentID
			}
		}
	}

	if err := s.store.UpdateCost(ctx, rec); err != nil {
		return nil, fmt.Errorf("costService.Upsert: %w", err)
	}
	return rec, nil
}

func (s *costService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCost(ctx, id)
}

// Link attaches a cost record to a shipment. The shipment must exist.
func (s *costService) Link(ctx context.Context, costID, shipmentID uuid.UUID) (*domain.CostRecord, error) {
	rec, err := s.costByID(costID)
	if err != nil {
		return nil, err
	}
	if !s.shipmentExists(shipmentID) {
		return nil, domain.ErrShipmentLinkInvalid
	}
	rec.ShipmentID = shipmentID
	if err := s.store.UpdateCost(ctx, rec); err != nil {
		return nil, fmt.Errorf("costService.Link: %w", err)
	}
	return rec, nil
}

func (s *costService) Unlink(ctx context.Context, costID uuid.UUID) (*domain.CostRecord, error) {
	rec, err := s.costByID(costID)
	if err != nil {
		return nil, err
	}
	rec.ShipmentID = uuid.Nil
	if err := s.store.UpdateCost(ctx, rec); err != nil {
		return nil, fmt.Errorf("costService.Unlink: %w", err)
	}
	return rec, nil
}

// ImportCSV parses the upload and writes each row through the ingestion
// duplicate check, so re-importing the same file is idempotent.
func (s *costService) ImportCSV(ctx context.Context, r io.Reader, costType domain.CostType) (*ImportReport, error) {
	if costType == "" {
		return nil, domain.ErrMissingCostType
	}
	if !domain.ValidCostTypes[costType] {
		return nil, domain.ErrInvalidCostType
	}

	parsed, err := csvimport.Read(r, costType)
	if err != nil {
		return nil, fmt.Errorf("costService.ImportCSV: %w", err)
	}

	// One snapshot for the whole import; rows written here are appended so
	// duplicates within the same file are caught too.
	pool := s.store.Costs()
	report := &ImportReport{Skipped: parsed.Skipped}
	for i := range parsed.Records {
		rec := parsed.Records[i]
		if dup := recon.FindIngestionDuplicate(pool, &rec); dup != nil {
			rec.ID = dup.ID
			rec.CreatedAt = dup.CreatedAt
			rec.ShipmentID = dup.ShipmentID
			report.Duplicates++
		} else {
			report.Imported++
		}
		if err := s.store.UpdateCost(ctx, &rec); err != nil {
			return report, fmt.Errorf("costService.ImportCSV: row %d (invoice %q): %w", i+1, rec.InvoiceNo, err)
		}
		pool = append(pool, rec)
	}

	log.Printf("costService.ImportCSV: type=%s imported=%d duplicates=%d skipped=%d",
		costType, report.Imported, report.Duplicates, report.Skipped)
	return report, nil
}

// ImportDocument runs an uploaded document through the extractor and writes
// the resulting cost record through the same ingestion duplicate check as the
// other write paths.
func (s *costService) ImportDocument(ctx context.Context, content []byte, contentType string, costType domain.CostType) (*domain.CostRecord, error) {
	if costType == "" {
		return nil, domain.ErrMissingCostType
	}
	if !domain.ValidCostTypes[costType] {
		return nil, domain.ErrInvalidCostType
	}

	doc, err := s.extractor.Extract(ctx, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("costService.ImportDocument: %w", err)
	}
	rec, err := documentToCost(doc, costType)
	if err != nil {
		return nil, fmt.Errorf("costService.ImportDocument: %w", err)
	}

	log.Printf("costService.ImportDocument: type=%s invoice=%q bl=%q", costType, rec.InvoiceNo, rec.ExtractedBL)
	return s.Upsert(ctx, rec)
}

// documentToCost maps the extractor output onto a new, unlinked cost record.
// Tax detail lines are advisory and not persisted.
func documentToCost(doc *port.ExtractedDocument, costType domain.CostType) (*domain.CostRecord, error) {
	rec := &domain.CostRecord{
		UUID:            doc.UUID,
		InvoiceNo:       doc.InvoiceNo,
		Description:     doc.Description,
		Currency:        strings.ToUpper(doc.Currency),
		ExtractedBL:     doc.ExtractedBL,
		LinkedContainer: doc.ExtractedContainer,
		Type:            costType,
		Status:          domain.CostStatusPending,
	}
	if doc.Amount != "" {
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(doc.Amount)
		amt, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("bad amount %q: %w", doc.Amount, err)
		}
		rec.Amount = amt
	}
	if doc.Date != "" {
		if d, err := time.Parse("2006-01-02", doc.Date); err == nil {
			rec.SubmitDate = &d
		}
	}
	return rec, nil
}

// RunDedup groups costs sharing a fiscal UUID and removes every record except
// the best-scored one in each group.
func (s *costService) RunDedup(ctx context.Context) (*DedupReport, error) {
	groups := recon.FindDuplicates(s.store.Costs())

	var discard []uuid.UUID
	for _, g := range groups {
		for _, c := range g.Discard {
			discard = append(discard, c.ID)
		}
	}
	report := &DedupReport{Groups: groups}
	if len(discard) == 0 {
		return report, nil
	}

	res, err := s.store.BatchDeleteCosts(ctx, discard)
	report.Removed = res.Succeeded
	if err != nil {
		return report, fmt.Errorf("costService.RunDedup: %w", err)
	}
	log.Printf("costService.RunDedup: groups=%d removed=%d", len(groups), report.Removed)
	return report, nil
}

func (s *costService) costByID(id uuid.UUID) (*domain.CostRecord, error) {
	for _, c := range s.store.Costs() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrCostNotFound
}

func (s *costService) shipmentExists(id uuid.UUID) bool {
	for _, sh := range s.store.Shipments() {
		if sh.ID == id {
			return true
		}
	}
	return false
}

func validateCost(rec *domain.CostRecord) error {
	if rec.Type == "" {
		return domain.ErrMissingCostType
	}
	if !domain.ValidCostTypes[rec.Type] {
		return domain.ErrInvalidCostType
	}
	return nil
}
