package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StringList is a []string stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
}

// Shipment is a booking. BLNo is the join key for every dependent collection
// and Containers is the authoritative container manifest for that BL.
type Shipment struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BLNo        string          `db:"bl_no" json:"bl_no"`
	Containers  StringList      `db:"containers" json:"containers"`
	Origin      string          `db:"origin" json:"origin"`
	Destination string          `db:"destination" json:"destination"`
	Vessel      string          `db:"vessel" json:"vessel"`
	Voyage      string          `db:"voyage" json:"voyage"`
	ETD         *time.Time      `db:"etd" json:"etd"`
	ETA         *time.Time      `db:"eta" json:"eta"`
	ATD         *time.Time      `db:"atd" json:"atd"`
	ATA         *time.Time      `db:"ata" json:"ata"`
	Status      ShipmentStatus  `db:"status" json:"status"`
	FreightCost decimal.Decimal `db:"freight_cost" json:"freight_cost"`
	FreightCurr string          `db:"freight_curr" json:"freight_curr"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// PreAlertRecord is the earliest-known booking notice, the source of truth for
// booking-level metadata before vessel tracking begins.
type PreAlertRecord struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	BookingAbw       string     `db:"booking_abw" json:"booking_abw"`
	LinkedContainers StringList `db:"linked_containers" json:"linked_containers"`
	Model            string     `db:"model" json:"model"`
	InvoiceNo        string     `db:"invoice_no" json:"invoice_no"`
	ShippingLine     string     `db:"shipping_line" json:"shipping_line"`
	POL              string     `db:"pol" json:"pol"`
	POD              string     `db:"pod" json:"pod"`
	ETD              *time.Time `db:"etd" json:"etd"`
	ETA              *time.Time `db:"eta" json:"eta"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// VesselTrackingRecord is one row per container for a given BL.
type VesselTrackingRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	BLNo          string     `db:"bl_no" json:"bl_no"`
	ContainerNo   string     `db:"container_no" json:"container_no"`
	ContainerSize string     `db:"container_size" json:"container_size"`
	Vessel        string     `db:"vessel" json:"vessel"`
	Voyage        string     `db:"voyage" json:"voyage"`
	POL           string     `db:"pol" json:"pol"`
	POD           string     `db:"pod" json:"pod"`
	ETD           *time.Time `db:"etd" json:"etd"`
	ETA           *time.Time `db:"eta" json:"eta"`
	ATD           *time.Time `db:"atd" json:"atd"`
	ATA           *time.Time `db:"ata" json:"ata"`
	Model         string     `db:"model" json:"model"`
	InvoiceNo     string     `db:"invoice_no" json:"invoice_no"`
	Quantity      int        `db:"quantity" json:"quantity"`
	ProjectType   string     `db:"project_type" json:"project_type"`
	ContractNo    string     `db:"contract_no" json:"contract_no"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// CustomsClearanceRecord is one row per container for a given BL.
type CustomsClearanceRecord struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	BLNo              string     `db:"bl_no" json:"bl_no"`
	ContainerNo       string     `db:"container_no" json:"container_no"`
	PedimentoNo       string     `db:"pedimento_no" json:"pedimento_no"`
	CustomsBroker     string     `db:"customs_broker" json:"customs_broker"`
	ReviewDate        *time.Time `db:"review_date" json:"review_date"`
	AuthorizationDate *time.Time `db:"authorization_date" json:"authorization_date"`
	ETA               *time.Time `db:"eta" json:"eta"`
	Model             string     `db:"model" json:"model"`
	InvoiceNo         string     `db:"invoice_no" json:"invoice_no"`
	Quantity          int        `db:"quantity" json:"quantity"`
	ProjectType       string     `db:"project_type" json:"project_type"`
	ContractNo        string     `db:"contract_no" json:"contract_no"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// EquipmentTrackingRecord is one row per container for a given BL. Equipment
// rows carry no manual fields and are fully regenerable from an extraction.
type EquipmentTrackingRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	BLNo          string     `db:"bl_no" json:"bl_no"`
	ContainerNo   string     `db:"container_no" json:"container_no"`
	ContainerSize string     `db:"container_size" json:"container_size"`
	EIRDate       *time.Time `db:"eir_date" json:"eir_date"`
	ReturnDate    *time.Time `db:"return_date" json:"return_date"`
	DemurrageDays int        `db:"demurrage_days" json:"demurrage_days"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// CostRecord is an invoice/expense. ShipmentID may be Nil: cost records exist
// independently and are linked to a shipment lazily by the reconciliation
// engine. ExtractedBL and LinkedContainer are raw advisory values and may
// disagree with the linked shipment; that disagreement is surfaced as a
// validation flag, never silently fixed.
type CostRecord struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ShipmentID      uuid.UUID       `db:"shipment_id" json:"shipment_id"`
	ExtractedBL     string          `db:"extracted_bl" json:"extracted_bl"`
	LinkedContainer string          `db:"linked_container" json:"linked_container"`
	UUID            string          `db:"uuid" json:"uuid"`
	InvoiceNo       string          `db:"invoice_no" json:"invoice_no"`
	Description     string          `db:"description" json:"description"`
	Provider        string          `db:"provider" json:"provider"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Currency        string          `db:"currency" json:"currency"`
	Type            CostType        `db:"type" json:"type"`
	Status          CostStatus      `db:"status" json:"status"`
	BPM             string          `db:"bpm" json:"bpm"`
	SubmitDate      *time.Time      `db:"submit_date" json:"submit_date"`
	PaymentDate     *time.Time      `db:"payment_date" json:"payment_date"`
	Comments        string          `db:"comments" json:"comments"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Linked reports whether the cost record is formally linked to a shipment.
func (c *CostRecord) Linked() bool {
	return c.ShipmentID != uuid.Nil
}

// Quotation is a supplier price for one concept, optionally scoped to an
// exact container count.
type Quotation struct {
	Concept        string          `json:"concept"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	ContainerCount *int            `json:"container_count,omitempty"`
}

// QuotationList is a []Quotation stored as a JSONB column.
type QuotationList []Quotation

// Value implements driver.Valuer.
func (l QuotationList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *QuotationList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("QuotationList.Scan: unsupported type %T", src)
	}
}

// Supplier is a service provider. RFC is the Mexican tax ID used to resolve a
// cost record's provider display name.
type Supplier struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	Name       string        `db:"name" json:"name"`
	RFC        string        `db:"rfc" json:"rfc"`
	Quotations QuotationList `db:"quotations" json:"quotations"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}
