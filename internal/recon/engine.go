// Package recon joins cost records to shipments by BL/container matching and
// computes the validation flags surfaced for human review. Everything here is
// pure computation over in-memory snapshots: no I/O, deterministic, safe to
// re-run.
package recon

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"porteo/internal/domain"
	"porteo/internal/ident"
)

// Row is one reconciliation display row: either a cost record (linked or not)
// or a virtual placeholder for a shipment with no invoiced freight yet.
type Row struct {
	Cost                *domain.CostRecord `json:"cost,omitempty"`
	BLNo                string             `json:"bl_no"`
	Containers          []string           `json:"containers"`
	Virtual             bool               `json:"virtual"`
	Linked              bool               `json:"linked"`
	SuggestedShipmentID uuid.UUID          `json:"suggested_shipment_id,omitempty"`
	BookingMatch        bool               `json:"booking_match"`
	ContainerMatch      domain.MatchLevel  `json:"container_match"`
	PriceFlag           PriceFlag          `json:"price_flag"`
	Amount              decimal.Decimal    `json:"amount"`
	Currency            string             `json:"currency"`
	ProviderName        string             `json:"provider_name"`
}

// Engine reconciles a batch of cost records against a batch of shipments.
// Pre-alerts without a shipment record participate in matching as shadow
// shipments but never produce a virtual pending-freight row.
type Engine struct {
	resolver     *Resolver
	shipments    []domain.Shipment
	shipmentByID map[uuid.UUID]*domain.Shipment
	shadowBLs    map[string]bool
	suppliers    []domain.Supplier
}

// NewEngine builds the per-batch lookup structures.
func NewEngine(shipments []domain.Shipment, preAlerts []domain.PreAlertRecord, suppliers []domain.Supplier) *Engine {
	e := &Engine{
		shipments:    shipments,
		shipmentByID: make(map[uuid.UUID]*domain.Shipment, len(shipments)),
		shadowBLs:    make(map[string]bool),
		suppliers:    suppliers,
	}
	realBLs := make(map[string]bool, len(shipments))
	for i := range shipments {
		e.shipmentByID[shipments[i].ID] = &shipments[i]
		realBLs[ident.Normalize(shipments[i].BLNo)] = true
	}

	pool := append([]domain.Shipment(nil), shipments...)
	for _, pa := range preAlerts {
		norm := ident.Normalize(pa.BookingAbw)
		if norm == "" || realBLs[norm] || e.shadowBLs[norm] {
			continue
		}
		e.shadowBLs[norm] = true
		pool = append(pool, domain.Shipment{
			ID:         pa.ID,
			BLNo:       pa.BookingAbw,
			Containers: pa.LinkedContainers,
		})
	}
	e.resolver = NewResolver(pool)
	return e
}

// Resolver exposes the engine's per-batch resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// BuildRows produces one row per cost record plus one virtual row per real
// shipment that has no cost record linked to it.
func (e *Engine) BuildRows(costs []domain.CostRecord) []Row {
	rows := make([]Row, 0, len(costs))
	covered := make(map[uuid.UUID]bool)

	for i := range costs {
		cost := &costs[i]
		def := e.shipmentByID[cost.ShipmentID]
		if def != nil {
			covered[def.ID] = true
		}
		resolved := e.resolver.ResolveShipmentInfo(cost.LinkedContainer, def, cost.ExtractedBL)

		row := Row{
			Cost:           cost,
			BLNo:           resolved.BLNo,
			Containers:     resolved.Containers,
			Linked:         def != nil,
			BookingMatch:   bookingMatch(cost.ExtractedBL, resolved.Shipments),
			ContainerMatch: containerMatch(cost.LinkedContainer, resolved.Shipments),
			PriceFlag:      e.priceFlag(cost),
			Amount:         cost.Amount,
			Currency:       cost.Currency,
			ProviderName:   e.providerName(cost.Provider),
		}
		if def == nil {
			if s := firstReal(resolved.Shipments, e.shadowBLs); s != nil {
				row.SuggestedShipmentID = s.ID
			}
		}
		rows = append(rows, row)
	}

	for i := range e.shipments {
		s := &e.shipments[i]
		if covered[s.ID] {
			continue
		}
		rows = append(rows, Row{
			BLNo:           s.BLNo,
			Containers:     s.Containers,
			Virtual:        true,
			BookingMatch:   true,
			ContainerMatch: domain.MatchNotChecked,
			PriceFlag:      PriceNotChecked,
			Amount:         s.FreightCost,
			Currency:       s.FreightCurr,
		})
	}
	return rows
}

// firstReal returns the first resolved shipment that is not a pre-alert
// shadow, for use as a one-click link suggestion.
func firstReal(shipments []*domain.Shipment, shadowBLs map[string]bool) *domain.Shipment {
	for _, s := range shipments {
		if !shadowBLs[ident.Normalize(s.BLNo)] {
			return s
		}
	}
	return nil
}

// bookingMatch reports whether the cost's raw extracted BL string intersects
// the resolved shipments' BLs. The raw string is split on hard separators
// only, so one BL written with internal spaces ("HLCU BEN 123 4567") still
// matches, and each segment is compared by normalized containment.
func bookingMatch(extractedBL string, shipments []*domain.Shipment) bool {
	groups := ident.SplitGroups(extractedBL)
	if len(groups) == 0 || len(shipments) == 0 {
		return false
	}
	for _, s := range shipments {
		nb := ident.Normalize(s.BLNo)
		if nb == "" {
			continue
		}
		for _, g := range groups {
			if strings.Contains(g, nb) || strings.Contains(nb, g) {
				return true
			}
		}
	}
	return false
}

// containerMatch compares the invoice's container list against the resolved
// shipments' manifests: full when every invoice container is found, partial
// on any overlap, none otherwise. Cost records listing no containers are not
// checked.
func containerMatch(linkedContainer string, shipments []*domain.Shipment) domain.MatchLevel {
	invoice := ident.SplitTokens(linkedContainer)
	if len(invoice) == 0 {
		return domain.MatchNotChecked
	}
	owned := make(map[string]bool)
	for _, s := range shipments {
		for _, c := range s.Containers {
			owned[ident.Normalize(c)] = true
		}
	}
	found := 0
	for _, c := range invoice {
		if owned[c] {
			found++
		}
	}
	switch {
	case found == len(invoice):
		return domain.MatchFull
	case found > 0:
		return domain.MatchPartial
	default:
		return domain.MatchNone
	}
}

func (e *Engine) providerName(provider string) string {
	for i := range e.suppliers {
		if e.suppliers[i].RFC == provider {
			return e.suppliers[i].Name
		}
	}
	return provider
}
