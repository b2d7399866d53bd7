package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromText(t *testing.T) {
	t.Run("labeled BL with spaced formatting", func(t *testing.T) {
		res := FromText("Shipment ref B/L: HLCU BEN 123 4567 arriving next week")
		assert.Equal(t, "HLCU BEN 123 4567", res.ExtractedBL)
	})

	t.Run("booking label", func(t *testing.T) {
		res := FromText("Booking No. 177ABC1234 confirmed by carrier")
		assert.Equal(t, "177ABC1234", res.ExtractedBL)
	})

	t.Run("labeled container list", func(t *testing.T) {
		res := FromText("Containers: MSKU1234567, TCLU7654321 released at terminal")
		assert.Equal(t, "MSKU1234567, TCLU7654321", res.ExtractedContainer)
	})

	t.Run("strict fallback when no label present", func(t *testing.T) {
		res := FromText("charges for MAEU123456789 pending approval")
		assert.Equal(t, "MAEU123456789", res.ExtractedBL)
	})

	t.Run("container fallback requires exactly seven digits", func(t *testing.T) {
		res := FromText("gate out CAIU 8812340 done")
		assert.Equal(t, "CAIU8812340", res.ExtractedContainer)
	})

	t.Run("no reference in text", func(t *testing.T) {
		res := FromText("monthly storage invoice, no shipment attached")
		assert.Empty(t, res.ExtractedBL)
		assert.Empty(t, res.ExtractedContainer)
	})

	t.Run("duplicate references collapse", func(t *testing.T) {
		res := FromText("BL: MAEU1234567 ... BL No MAEU 1234567")
		assert.Equal(t, "MAEU1234567", res.ExtractedBL)
	})
}
