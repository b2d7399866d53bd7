package recon

import (
	"strings"

	"porteo/internal/domain"
	"porteo/internal/ident"
)

// minRequiredBLLen is the length below which a raw BL string is considered
// too trivial to resolve against.
const minRequiredBLLen = 5

// minStrictFilterLen is the length below which a raw BL string does not
// trigger the strict candidate filter.
const minStrictFilterLen = 3

// Resolved is the outcome of matching one cost record's container and BL
// claims against the shipment pool. BLNo is the comma-joined union across the
// final candidate set and may legitimately span several bookings shipped
// together; it is empty when nothing matched.
type Resolved struct {
	BLNo       string
	Containers []string
	Shipments  []*domain.Shipment
}

// Resolver indexes a shipment batch for O(1) container and BL lookups. Build
// it once per batch; resolution itself is pure computation over the indexes.
type Resolver struct {
	shipments   []domain.Shipment
	byBL        map[string]int
	byContainer map[string][]int
}

// NewResolver builds the lookup maps over the given shipments. Keys are
// normalized identifiers.
func NewResolver(shipments []domain.Shipment) *Resolver {
	r := &Resolver{
		shipments:   shipments,
		byBL:        make(map[string]int, len(shipments)),
		byContainer: make(map[string][]int),
	}
	for i := range shipments {
		if bl := ident.Normalize(shipments[i].BLNo); bl != "" {
			if _, ok := r.byBL[bl]; !ok {
				r.byBL[bl] = i
			}
		}
		for _, c := range shipments[i].Containers {
			if n := ident.Normalize(c); n != "" {
				r.byContainer[n] = append(r.byContainer[n], i)
			}
		}
	}
	return r
}

// ResolveShipmentInfo determines which shipment(s) a cost record belongs to.
//
// The candidate set is seeded with defaultShipment (the shipment the record is
// already linked to, if any), grown by container ownership, then by BL token
// lookup (exact first, containment fallback). If the raw BL string is
// non-trivial and at least one candidate's BL appears inside it, the set is
// replaced with only those candidates: this discards container-derived false
// positives such as two unrelated bookings sharing a drayage container. When
// the filter would eliminate every candidate, the pre-filter set is kept as a
// best-effort result.
func (r *Resolver) ResolveShipmentInfo(containerStr string, defaultShipment *domain.Shipment, requiredBL string) Resolved {
	var order []int
	seen := make(map[int]bool)
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			order = append(order, i)
		}
	}

	if defaultShipment != nil {
		for i := range r.shipments {
			if r.shipments[i].ID == defaultShipment.ID {
				add(i)
				break
			}
		}
	}

	for _, tok := range ident.SplitTokens(containerStr) {
		for _, i := range r.byContainer[tok] {
			add(i)
		}
	}

	if len(requiredBL) > minRequiredBLLen {
		for _, tok := range ident.SplitBLTokens(requiredBL) {
			if i, ok := r.byBL[tok]; ok {
				add(i)
				continue
			}
			for i := range r.shipments {
				nb := ident.Normalize(r.shipments[i].BLNo)
				if nb == "" {
					continue
				}
				if strings.Contains(nb, tok) || strings.Contains(tok, nb) {
					add(i)
				}
			}
		}
	}

	if len(requiredBL) > minStrictFilterLen {
		normReq := ident.Normalize(requiredBL)
		var strict []int
		for _, i := range order {
			nb := ident.Normalize(r.shipments[i].BLNo)
			if nb != "" && strings.Contains(normReq, nb) {
				strict = append(strict, i)
			}
		}
		// Zero strict survivors means the container-derived candidates stay
		// as the best effort, even though the BL itself matched nothing.
		if len(strict) > 0 {
			order = strict
		}
	}

	return r.collect(order)
}

func (r *Resolver) collect(order []int) Resolved {
	var res Resolved
	var bls []string
	seenBL := make(map[string]bool)
	seenContainer := make(map[string]bool)
	for _, i := range order {
		s := &r.shipments[i]
		res.Shipments = append(res.Shipments, s)
		if s.BLNo != "" && !seenBL[s.BLNo] {
			seenBL[s.BLNo] = true
			bls = append(bls, s.BLNo)
		}
		for _, c := range s.Containers {
			if !seenContainer[c] {
				seenContainer[c] = true
				res.Containers = append(res.Containers, c)
			}
		}
	}
	res.BLNo = strings.Join(bls, ", ")
	return res
}
