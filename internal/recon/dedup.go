package recon

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"porteo/internal/domain"
	"porteo/internal/ident"
)

// uuidMissingSentinel marks cost records whose fiscal document had no UUID.
const uuidMissingSentinel = "-"

// ingestionAmountTolerance is the amount delta under which two records with
// overlapping invoice numbers are considered the same document.
var ingestionAmountTolerance = decimal.NewFromInt(1)

// DuplicateGroup is one set of cost records sharing a fiscal UUID. Keep is
// the best-linked member; Discard holds the rest, in rank order.
type DuplicateGroup struct {
	UUID    string
	Keep    domain.CostRecord
	Discard []domain.CostRecord
}

// dedupScore ranks duplicates: a record linked to a shipment beats one that
// only carries an extracted BL, which beats a bare record.
func dedupScore(c *domain.CostRecord) int {
	score := 0
	if c.Linked() {
		score += 10
	}
	if c.ExtractedBL != "" {
		score += 5
	}
	return score
}

// FindDuplicates groups cost records by normalized fiscal UUID and, for every
// group of two or more, picks the best-linked record to keep. Records with an
// empty or sentinel UUID never group. The result is deterministic regardless
// of input order.
func FindDuplicates(costs []domain.CostRecord) []DuplicateGroup {
	byUUID := make(map[string][]domain.CostRecord)
	for _, c := range costs {
		if c.UUID == "" || c.UUID == uuidMissingSentinel {
			continue
		}
		key := ident.Normalize(c.UUID)
		if key == "" {
			continue
		}
		byUUID[key] = append(byUUID[key], c)
	}

	var groups []DuplicateGroup
	for key, members := range byUUID {
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			si, sj := dedupScore(&members[i]), dedupScore(&members[j])
			if si != sj {
				return si > sj
			}
			return members[i].ID.String() < members[j].ID.String()
		})
		groups = append(groups, DuplicateGroup{
			UUID:    key,
			Keep:    members[0],
			Discard: members[1:],
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].UUID < groups[j].UUID })
	return groups
}

// FindIngestionDuplicate checks a new record against the existing pool at
// ingestion time. A hit means the incoming document was already captured: the
// caller reuses the returned record's id so re-importing the same document is
// idempotent rather than additive.
//
// Two records match on normalized UUID equality. Manual entries lacking a
// UUID instead match on invoice-number containment in either direction
// combined with an amount delta under one currency unit.
func FindIngestionDuplicate(existing []domain.CostRecord, candidate *domain.CostRecord) *domain.CostRecord {
	candUUID := ""
	if candidate.UUID != "" && candidate.UUID != uuidMissingSentinel {
		candUUID = ident.Normalize(candidate.UUID)
	}
	candInvoice := ident.Normalize(candidate.InvoiceNo)

	for i := range existing {
		e := &existing[i]
		if e.ID == candidate.ID {
			continue
		}
		if candUUID != "" && e.UUID != "" && e.UUID != uuidMissingSentinel &&
			ident.Normalize(e.UUID) == candUUID {
			return e
		}
		if candInvoice == "" {
			continue
		}
		exInvoice := ident.Normalize(e.InvoiceNo)
		if exInvoice == "" {
			continue
		}
		if !strings.Contains(exInvoice, candInvoice) && !strings.Contains(candInvoice, exInvoice) {
			continue
		}
		if e.Amount.Sub(candidate.Amount).Abs().LessThan(ingestionAmountTolerance) {
			return e
		}
	}
	return nil
}
