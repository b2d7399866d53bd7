package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porteo/internal/domain"
	"porteo/internal/recon"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 17)
	assert.Equal(t, "BL", row[0])
	assert.Equal(t, "Payment Date", row[16])
}

func TestWriteRows(t *testing.T) {
	submitted := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	rows := []recon.Row{
		{
			Cost: &domain.CostRecord{
				InvoiceNo:   "F-1001",
				UUID:        "ABCD-1",
				Provider:    "TMX010101ABC",
				Description: "inland leg",
				Type:        domain.CostTypeInland,
				Status:      domain.CostStatusPending,
				SubmitDate:  &submitted,
			},
			BLNo:           "MAEU123456789",
			Containers:     []string{"MSKU1234567", "TCLU7654321"},
			Linked:         true,
			BookingMatch:   true,
			ContainerMatch: domain.MatchFull,
			PriceFlag:      recon.PriceOK,
			Amount:         decimal.RequireFromString("1250.5"),
			Currency:       "USD",
			ProviderName:   "Transportes MX",
		},
		{
			BLNo:           "HLCUBEN1234567",
			Virtual:        true,
			BookingMatch:   true,
			ContainerMatch: domain.MatchNotChecked,
			PriceFlag:      recon.PriceNotChecked,
			Amount:         decimal.RequireFromString("800"),
			Currency:       "MXN",
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(rows))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	cost := records[1]
	assert.Equal(t, "MAEU123456789", cost[0])
	assert.Equal(t, "MSKU1234567, TCLU7654321", cost[1])
	assert.Equal(t, "No", cost[2])
	assert.Equal(t, "Yes", cost[3])
	assert.Equal(t, "full", cost[5])
	assert.Equal(t, "F-1001", cost[7])
	assert.Equal(t, "Transportes MX", cost[9])
	assert.Equal(t, "1250.50", cost[11])
	assert.Equal(t, "2026-05-02", cost[15])

	virtual := records[2]
	assert.Equal(t, "HLCUBEN1234567", virtual[0])
	assert.Equal(t, "Yes", virtual[2])
	assert.Empty(t, virtual[7])
	assert.Equal(t, "800.00", virtual[11])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "recon_INLAND", SanitizeFilename("recon INLAND"))
	assert.Equal(t, "a_b", SanitizeFilename("a//b"))
	assert.Equal(t, "x", SanitizeFilename("_x_"))
}
