// Package csvimport parses the cost spreadsheet exported by the finance
// team. Column headers are matched loosely so renamed or reordered exports
// still load, and rows without an amount or invoice number are skipped.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"porteo/internal/domain"
)

const dateLayout = "2006-01-02"

// Result reports what was parsed and which rows were skipped.
type Result struct {
	Records []domain.CostRecord
	Skipped int
}

// columns maps the semantic field to the header names we accept.
var columns = map[string][]string{
	"bl":        {"bl", "bl optional", "bl no", "master bl"},
	"container": {"container", "container optional", "containers"},
	"invoice":   {"invoice no", "invoice", "invoice number", "folio"},
	"date":      {"date", "date yyyy-mm-dd", "submit date"},
	"amount":    {"amount", "total", "importe"},
	"currency":  {"currency", "curr", "moneda"},
	"uuid":      {"uuid", "uuid cfdi", "fiscal uuid"},
	"provider":  {"provider", "supplier", "proveedor"},
	"desc":      {"description", "concept", "concepto"},
	"comments":  {"comments", "comentarios"},
}

// Read parses the CSV and converts each usable row to a cost record of the
// given type. Records come back unlinked; matching happens downstream.
func Read(r io.Reader, costType domain.CostType) (Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, domain.ErrEmptyImport
	}
	if err != nil {
		return Result{}, fmt.Errorf("csvimport.Read: header: %w", err)
	}
	idx := indexColumns(header)

	var res Result
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("csvimport.Read: line %d: %w", line, err)
		}

		rec, ok := parseRow(row, idx, costType)
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	if len(res.Records) == 0 {
		return Result{}, domain.ErrEmptyImport
	}
	return res, nil
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, h := range header {
		key := normalizeHeader(h)
		for field, names := range columns {
			if _, done := idx[field]; done {
				continue
			}
			for _, n := range names {
				if key == n {
					idx[field] = i
					break
				}
			}
		}
	}
	return idx
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("(", "", ")", "", ".", "", "_", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func parseRow(row []string, idx map[string]int, costType domain.CostType) (domain.CostRecord, bool) {
	get := func(field string) string {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	invoice := get("invoice")
	rawAmount := get("amount")
	if invoice == "" && rawAmount == "" {
		return domain.CostRecord{}, false
	}

	amount := decimal.Zero
	if rawAmount != "" {
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(rawAmount)
		parsed, err := decimal.NewFromString(cleaned)
		if err != nil {
			return domain.CostRecord{}, false
		}
		amount = parsed
	}

	rec := domain.CostRecord{
		ExtractedBL:     get("bl"),
		LinkedContainer: get("container"),
		InvoiceNo:       invoice,
		UUID:            get("uuid"),
		Provider:        get("provider"),
		Description:     get("desc"),
		Comments:        get("comments"),
		Amount:          amount,
		Currency:        strings.ToUpper(get("currency")),
		Type:            costType,
		Status:          domain.CostStatusPending,
	}

	if raw := get("date"); raw != "" {
		if d, err := time.Parse(dateLayout, raw); err == nil {
			rec.SubmitDate = &d
		}
	}
	return rec, true
}
