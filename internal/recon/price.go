package recon

import (
	"github.com/shopspring/decimal"

	"porteo/internal/domain"
	"porteo/internal/ident"
)

// PriceFlag is the result of comparing a cost amount against the supplier's
// quoted price for the same concept.
type PriceFlag string

const (
	PriceOK PriceFlag = "ok"
	// PriceMismatch means a quotation exists and the amount deviates from it
	// beyond the tolerance.
	PriceMismatch PriceFlag = "mismatch"
	// PriceNoQuotation means no quotation could be found for the cost's
	// (concept, provider) pair, which is flagged the same as a mismatch.
	PriceNoQuotation PriceFlag = "no_quotation"
	// PriceNotChecked is used on virtual rows.
	PriceNotChecked PriceFlag = "not_checked"
)

var priceTolerance = decimal.RequireFromString("0.1")

// priceFlag looks up a supplier quotation by (concept, provider), preferring
// one scoped to the exact container count on the cost record and falling back
// to an unscoped one. Concept matching is exact string equality against the
// cost description: concept-text drift produces a no-quotation result.
func (e *Engine) priceFlag(cost *domain.CostRecord) PriceFlag {
	var supplier *domain.Supplier
	for i := range e.suppliers {
		if e.suppliers[i].RFC == cost.Provider || e.suppliers[i].Name == cost.Provider {
			supplier = &e.suppliers[i]
			break
		}
	}
	if supplier == nil {
		return PriceNoQuotation
	}

	containerCount := len(ident.SplitTokens(cost.LinkedContainer))
	var scoped, unscoped *domain.Quotation
	for i := range supplier.Quotations {
		q := &supplier.Quotations[i]
		if q.Concept != cost.Description {
			continue
		}
		if q.ContainerCount != nil {
			if *q.ContainerCount == containerCount && scoped == nil {
				scoped = q
			}
			continue
		}
		if unscoped == nil {
			unscoped = q
		}
	}
	quote := scoped
	if quote == nil {
		quote = unscoped
	}
	if quote == nil {
		return PriceNoQuotation
	}
	if quote.Price.Sub(cost.Amount).Abs().GreaterThan(priceTolerance) {
		return PriceMismatch
	}
	return PriceOK
}
