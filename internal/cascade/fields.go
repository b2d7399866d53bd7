package cascade

import (
	"time"

	"porteo/internal/domain"
)

// ModelPlaceholder is the sentinel the extractor emits when it cannot read a
// model name. It never overwrites a real value during a merge.
const ModelPlaceholder = "Unknown Model (Update manually)"

// Fallback container labels for bookings whose extraction carried no
// container list (bulk or LCL cargo).
const (
	fallbackContainerSea       = "Bulk/LCL"
	fallbackContainerEquipment = "Multiple"
)

// mergeField applies the merge precedence rule: the incoming value wins only
// when it is non-empty and not a placeholder sentinel.
func mergeField(existing, incoming string) string {
	if incoming == "" || incoming == ModelPlaceholder {
		return existing
	}
	return incoming
}

func mergeDate(existing, incoming *time.Time) *time.Time {
	if incoming == nil {
		return existing
	}
	return incoming
}

// mergePreAlert folds freshly-extracted pre-alert data into an existing
// record. The container list is always replaced with the latest extraction.
func mergePreAlert(dst *domain.PreAlertRecord, src *domain.PreAlertRecord) {
	dst.BookingAbw = mergeField(dst.BookingAbw, src.BookingAbw)
	dst.Model = mergeField(dst.Model, src.Model)
	dst.InvoiceNo = mergeField(dst.InvoiceNo, src.InvoiceNo)
	dst.ShippingLine = mergeField(dst.ShippingLine, src.ShippingLine)
	dst.POL = mergeField(dst.POL, src.POL)
	dst.POD = mergeField(dst.POD, src.POD)
	dst.ETD = mergeDate(dst.ETD, src.ETD)
	dst.ETA = mergeDate(dst.ETA, src.ETA)
	dst.LinkedContainers = append(domain.StringList(nil), src.LinkedContainers...)
}

// vesselTemplate holds the manual fields preserved across a vessel tracking
// delete-and-recreate cycle.
type vesselTemplate struct {
	Quantity    int
	ProjectType string
	ContractNo  string
}

func captureVesselTemplate(rows []domain.VesselTrackingRecord) vesselTemplate {
	if len(rows) == 0 {
		return vesselTemplate{}
	}
	first := rows[0]
	return vesselTemplate{
		Quantity:    first.Quantity,
		ProjectType: first.ProjectType,
		ContractNo:  first.ContractNo,
	}
}

func (t vesselTemplate) apply(rec *domain.VesselTrackingRecord) {
	rec.Quantity = t.Quantity
	rec.ProjectType = t.ProjectType
	rec.ContractNo = t.ContractNo
}

// customsTemplate holds the manual fields preserved across a customs
// clearance delete-and-recreate cycle.
type customsTemplate struct {
	Quantity          int
	ProjectType       string
	ContractNo        string
	PedimentoNo       string
	CustomsBroker     string
	ReviewDate        *time.Time
	AuthorizationDate *time.Time
}

func captureCustomsTemplate(rows []domain.CustomsClearanceRecord) customsTemplate {
	if len(rows) == 0 {
		return customsTemplate{}
	}
	first := rows[0]
	return customsTemplate{
		Quantity:          first.Quantity,
		ProjectType:       first.ProjectType,
		ContractNo:        first.ContractNo,
		PedimentoNo:       first.PedimentoNo,
		CustomsBroker:     first.CustomsBroker,
		ReviewDate:        first.ReviewDate,
		AuthorizationDate: first.AuthorizationDate,
	}
}

func (t customsTemplate) apply(rec *domain.CustomsClearanceRecord) {
	rec.Quantity = t.Quantity
	rec.ProjectType = t.ProjectType
	rec.ContractNo = t.ContractNo
	rec.PedimentoNo = t.PedimentoNo
	rec.CustomsBroker = t.CustomsBroker
	rec.ReviewDate = t.ReviewDate
	rec.AuthorizationDate = t.AuthorizationDate
}

// applyVesselSharedFields copies the fields kept in sync across every vessel
// tracking row of one BL. Per-container fields (container number, size) are
// never touched. This list is the shared-field contract for the collection.
func applyVesselSharedFields(dst *domain.VesselTrackingRecord, src *domain.VesselTrackingRecord) {
	dst.Vessel = src.Vessel
	dst.Voyage = src.Voyage
	dst.POL = src.POL
	dst.POD = src.POD
	dst.ETD = src.ETD
	dst.ETA = src.ETA
	dst.ATD = src.ATD
	dst.ATA = src.ATA
	dst.Model = src.Model
	dst.InvoiceNo = src.InvoiceNo
	dst.Quantity = src.Quantity
	dst.ProjectType = src.ProjectType
	dst.ContractNo = src.ContractNo
}

// applyCustomsSharedFields copies the fields kept in sync across every customs
// clearance row of one BL. The container number is per-container and is never
// touched.
func applyCustomsSharedFields(dst *domain.CustomsClearanceRecord, src *domain.CustomsClearanceRecord) {
	dst.PedimentoNo = src.PedimentoNo
	dst.CustomsBroker = src.CustomsBroker
	dst.ReviewDate = src.ReviewDate
	dst.AuthorizationDate = src.AuthorizationDate
	dst.ETA = src.ETA
	dst.Model = src.Model
	dst.InvoiceNo = src.InvoiceNo
	dst.Quantity = src.Quantity
	dst.ProjectType = src.ProjectType
	dst.ContractNo = src.ContractNo
}
