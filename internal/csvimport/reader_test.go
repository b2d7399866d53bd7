package csvimport

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porteo/internal/domain"
)

func TestRead(t *testing.T) {
	t.Run("full header", func(t *testing.T) {
		csv := strings.Join([]string{
			"BL (Optional),Container (Optional),Invoice No,Date (YYYY-MM-DD),Amount,Currency,UUID,Provider,Comments",
			"MAEU123456789,MSKU1234567,F-1001,2026-05-02,\"1,250.50\",usd,ABCD-1,Transportes MX,inland leg",
			"HLCUBEN1234567,,F-1002,2026-05-03,800,MXN,ABCD-2,Agencia Aduanal,",
		}, "\n")

		res, err := Read(strings.NewReader(csv), domain.CostTypeInland)
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		assert.Zero(t, res.Skipped)

		first := res.Records[0]
		assert.Equal(t, "MAEU123456789", first.ExtractedBL)
		assert.Equal(t, "MSKU1234567", first.LinkedContainer)
		assert.Equal(t, "F-1001", first.InvoiceNo)
		assert.True(t, first.Amount.Equal(decimal.RequireFromString("1250.50")))
		assert.Equal(t, "USD", first.Currency)
		assert.Equal(t, "ABCD-1", first.UUID)
		assert.Equal(t, "Transportes MX", first.Provider)
		assert.Equal(t, "inland leg", first.Comments)
		assert.Equal(t, domain.CostTypeInland, first.Type)
		assert.Equal(t, domain.CostStatusPending, first.Status)
		require.NotNil(t, first.SubmitDate)
		assert.Equal(t, "2026-05-02", first.SubmitDate.Format("2006-01-02"))
		assert.False(t, first.Linked())
	})

	t.Run("optional columns missing", func(t *testing.T) {
		csv := "Invoice No,Amount,Currency\nF-2001,500,MXN\n"
		res, err := Read(strings.NewReader(csv), domain.CostTypeBroker)
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Empty(t, res.Records[0].ExtractedBL)
		assert.Empty(t, res.Records[0].LinkedContainer)
	})

	t.Run("rows without amount and invoice are skipped", func(t *testing.T) {
		csv := strings.Join([]string{
			"Invoice No,Amount",
			",",
			"F-3001,100",
			",   ",
		}, "\n")
		res, err := Read(strings.NewReader(csv), domain.CostTypePrepayments)
		require.NoError(t, err)
		assert.Len(t, res.Records, 1)
		assert.Equal(t, 2, res.Skipped)
	})

	t.Run("unparseable amount skips the row", func(t *testing.T) {
		csv := "Invoice No,Amount\nF-4001,n/a\nF-4002,75.25\n"
		res, err := Read(strings.NewReader(csv), domain.CostTypeInland)
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "F-4002", res.Records[0].InvoiceNo)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Read(strings.NewReader(""), domain.CostTypeInland)
		assert.ErrorIs(t, err, domain.ErrEmptyImport)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := Read(strings.NewReader("Invoice No,Amount\n"), domain.CostTypeInland)
		assert.ErrorIs(t, err, domain.ErrEmptyImport)
	})
}
