package port

import "context"

// TaxDetail is one line of the fiscal tax breakdown (CFDI traslado or
// retención).
type TaxDetail struct {
	Name   string `json:"name"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

// ExtractedDocument is the shape produced by the external document-extraction
// collaborator for an uploaded invoice (CFDI XML or PDF). This service only
// consumes the shape; it never parses documents itself.
type ExtractedDocument struct {
	UUID               string      `json:"uuid"`
	InvoiceNo          string      `json:"invoice_no"`
	Date               string      `json:"date"`
	Amount             string      `json:"amount"`
	Currency           string      `json:"currency"`
	Description        string      `json:"description"`
	ExtractedBL        string      `json:"extracted_bl"`
	ExtractedContainer string      `json:"extracted_container"`
	Items              []string    `json:"items"`
	TaxDetails         []TaxDetail `json:"tax_details"`
}

// DocumentExtractor extracts structured invoice data from an uploaded document.
type DocumentExtractor interface {
	Extract(ctx context.Context, content []byte, contentType string) (*ExtractedDocument, error)
}
