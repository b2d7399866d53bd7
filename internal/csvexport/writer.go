// Package csvexport renders the reconciliation view as a CSV download for the
// finance team.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"porteo/internal/recon"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"BL",
	"Containers",
	"Virtual",
	"Linked",
	"Booking Match",
	"Container Match",
	"Price Flag",
	"Invoice Number",
	"UUID",
	"Provider",
	"Description",
	"Amount",
	"Currency",
	"Type",
	"Status",
	"Submit Date",
	"Payment Date",
}

// Writer wraps csv.Writer for exporting reconciliation rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of reconciliation rows to CSV and writes them.
func (w *Writer) WriteRows(rows []recon.Row) error {
	for i := range rows {
		if err := w.csv.Write(reconToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// reconToRow converts one reconciliation row to a string slice. Virtual rows
// have no backing cost record, so the invoice columns stay empty.
func reconToRow(r *recon.Row) []string {
	row := make([]string, len(columns))
	row[0] = r.BLNo
	row[1] = strings.Join(r.Containers, ", ")
	row[2] = formatBool(r.Virtual)
	row[3] = formatBool(r.Linked)
	row[4] = formatBool(r.BookingMatch)
	row[5] = string(r.ContainerMatch)
	row[6] = string(r.PriceFlag)
	row[11] = r.Amount.StringFixed(2)
	row[12] = r.Currency
	row[9] = r.ProviderName

	if r.Cost == nil {
		return row
	}
	row[7] = r.Cost.InvoiceNo
	row[8] = r.Cost.UUID
	if row[9] == "" {
		row[9] = r.Cost.Provider
	}
	row[10] = r.Cost.Description
	row[13] = string(r.Cost.Type)
	row[14] = string(r.Cost.Status)
	row[15] = formatTime(r.Cost.SubmitDate)
	row[16] = formatTime(r.Cost.PaymentDate)
	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header, e.g. recon_INLAND_2026-08-30.csv.
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
