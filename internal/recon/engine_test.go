package recon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porteo/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestBuildRows_LinkedCost(t *testing.T) {
	shipments := testShipments()
	e := NewEngine(shipments, nil, nil)

	cost := domain.CostRecord{
		ID:              uuid.New(),
		ShipmentID:      shipments[0].ID,
		ExtractedBL:     "MAEU123456789",
		LinkedContainer: "MSKU1234567, TCLU7654321",
		Amount:          decimal.RequireFromString("1200.00"),
		Currency:        "USD",
	}

	rows := e.BuildRows([]domain.CostRecord{cost})

	require.Len(t, rows, 2) // the cost row plus a virtual row for the other shipment
	row := rows[0]
	assert.True(t, row.Linked)
	assert.False(t, row.Virtual)
	assert.Equal(t, uuid.Nil, row.SuggestedShipmentID)
	assert.True(t, row.BookingMatch)
	assert.Equal(t, domain.MatchFull, row.ContainerMatch)
	assert.Equal(t, "MAEU123456789", row.BLNo)
}

func TestBuildRows_BookingMatchWithSpacedBL(t *testing.T) {
	shipments := testShipments()
	e := NewEngine(shipments, nil, nil)

	cost := domain.CostRecord{
		ID:              uuid.New(),
		ExtractedBL:     "HLCU BEN 123 4567",
		LinkedContainer: "CAIU8812340",
	}

	rows := e.BuildRows([]domain.CostRecord{cost})

	require.NotEmpty(t, rows)
	row := rows[0]
	assert.False(t, row.Linked)
	assert.True(t, row.BookingMatch)
	assert.Equal(t, "HLCUBEN1234567", row.BLNo)
	assert.Equal(t, shipments[1].ID, row.SuggestedShipmentID)
}

func TestContainerMatchLevels(t *testing.T) {
	shipments := testShipments()
	owned := []*domain.Shipment{&shipments[0]}

	cases := []struct {
		name   string
		listed string
		want   domain.MatchLevel
	}{
		{"all containers found", "MSKU1234567 TCLU7654321", domain.MatchFull},
		{"one of two found", "MSKU1234567, XXXX0000000", domain.MatchPartial},
		{"none found", "XXXX0000000", domain.MatchNone},
		{"nothing listed", "", domain.MatchNotChecked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, containerMatch(tc.listed, owned))
		})
	}
}

func TestBuildRows_UnlinkedCostScenario(t *testing.T) {
	shipment := domain.Shipment{
		ID:         uuid.New(),
		BLNo:       "HLCUBEN1234567",
		Containers: domain.StringList{"TCKU1234567", "TCKU7654321"},
	}
	e := NewEngine([]domain.Shipment{shipment}, nil, nil)

	costs := []domain.CostRecord{
		{
			ID:              uuid.New(),
			ExtractedBL:     "HLCU BEN 123 4567",
			LinkedContainer: "TCKU1234567",
		},
		{
			ID:              uuid.New(),
			ExtractedBL:     "HLCU BEN 123 4567",
			LinkedContainer: "TCKU1234567, XXXU0000000",
		},
	}

	rows := e.BuildRows(costs)

	require.Len(t, rows, 3) // two cost rows plus the pending-freight row

	matched := rows[0]
	assert.True(t, matched.BookingMatch)
	assert.Equal(t, domain.MatchFull, matched.ContainerMatch)
	assert.Equal(t, shipment.ID, matched.SuggestedShipmentID)

	mismatched := rows[1]
	assert.True(t, mismatched.BookingMatch)
	assert.Equal(t, domain.MatchPartial, mismatched.ContainerMatch)
	assert.Equal(t, shipment.ID, mismatched.SuggestedShipmentID)
}

func TestBuildRows_VirtualRowForUncoveredShipment(t *testing.T) {
	shipments := testShipments()
	shipments[0].FreightCost = decimal.RequireFromString("2400.00")
	shipments[0].FreightCurr = "USD"
	e := NewEngine(shipments, nil, nil)

	cost := domain.CostRecord{
		ID:         uuid.New(),
		ShipmentID: shipments[1].ID,
	}

	rows := e.BuildRows([]domain.CostRecord{cost})

	require.Len(t, rows, 2)
	virtual := rows[1]
	assert.True(t, virtual.Virtual)
	assert.Nil(t, virtual.Cost)
	assert.Equal(t, "MAEU123456789", virtual.BLNo)
	assert.True(t, virtual.BookingMatch)
	assert.Equal(t, domain.MatchNotChecked, virtual.ContainerMatch)
	assert.Equal(t, PriceNotChecked, virtual.PriceFlag)
	assert.True(t, virtual.Amount.Equal(decimal.RequireFromString("2400.00")))
	assert.Equal(t, "USD", virtual.Currency)
}

func TestBuildRows_PreAlertShadowMatchesButNeverSuggested(t *testing.T) {
	shipments := testShipments()
	preAlerts := []domain.PreAlertRecord{{
		ID:               uuid.New(),
		BookingAbw:       "ONEY55443322",
		LinkedContainers: domain.StringList{"ONEU1122334"},
	}}
	e := NewEngine(shipments, preAlerts, nil)

	cost := domain.CostRecord{
		ID:          uuid.New(),
		ExtractedBL: "ONEY55443322",
	}

	rows := e.BuildRows([]domain.CostRecord{cost})

	// Two virtual rows for the real shipments, but none for the shadow.
	require.Len(t, rows, 3)
	row := rows[0]
	assert.True(t, row.BookingMatch)
	assert.Equal(t, "ONEY55443322", row.BLNo)
	assert.Equal(t, uuid.Nil, row.SuggestedShipmentID)
	for _, r := range rows[1:] {
		assert.True(t, r.Virtual)
		assert.NotEqual(t, "ONEY55443322", r.BLNo)
	}
}

func TestPriceFlag(t *testing.T) {
	supplier := domain.Supplier{
		ID:   uuid.New(),
		Name: "Transportes del Pacifico",
		RFC:  "TPA910101AB1",
		Quotations: domain.QuotationList{
			{Concept: "THC", Price: decimal.RequireFromString("100.00"), Currency: "USD", ContainerCount: intPtr(2)},
			{Concept: "THC", Price: decimal.RequireFromString("90.00"), Currency: "USD"},
		},
	}
	e := NewEngine(nil, nil, []domain.Supplier{supplier})

	cases := []struct {
		name string
		cost domain.CostRecord
		want PriceFlag
	}{
		{
			"scoped quotation within tolerance",
			domain.CostRecord{Provider: "TPA910101AB1", Description: "THC",
				LinkedContainer: "MSKU1234567, TCLU7654321",
				Amount:          decimal.RequireFromString("100.05")},
			PriceOK,
		},
		{
			"scoped quotation beyond tolerance",
			domain.CostRecord{Provider: "TPA910101AB1", Description: "THC",
				LinkedContainer: "MSKU1234567, TCLU7654321",
				Amount:          decimal.RequireFromString("100.15")},
			PriceMismatch,
		},
		{
			"falls back to unscoped quotation",
			domain.CostRecord{Provider: "TPA910101AB1", Description: "THC",
				LinkedContainer: "MSKU1234567",
				Amount:          decimal.RequireFromString("90.00")},
			PriceOK,
		},
		{
			"provider matched by display name",
			domain.CostRecord{Provider: "Transportes del Pacifico", Description: "THC",
				LinkedContainer: "MSKU1234567",
				Amount:          decimal.RequireFromString("90.00")},
			PriceOK,
		},
		{
			"concept text drift",
			domain.CostRecord{Provider: "TPA910101AB1", Description: "THC ",
				LinkedContainer: "MSKU1234567",
				Amount:          decimal.RequireFromString("90.00")},
			PriceNoQuotation,
		},
		{
			"unknown provider",
			domain.CostRecord{Provider: "GHOST", Description: "THC",
				Amount: decimal.RequireFromString("90.00")},
			PriceNoQuotation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.priceFlag(&tc.cost))
		})
	}
}

func TestProviderName(t *testing.T) {
	suppliers := []domain.Supplier{{
		ID:   uuid.New(),
		Name: "Agencia Aduanal Norte",
		RFC:  "AAN050505XY2",
	}}
	e := NewEngine(nil, nil, suppliers)

	assert.Equal(t, "Agencia Aduanal Norte", e.providerName("AAN050505XY2"))
	assert.Equal(t, "Otro Proveedor", e.providerName("Otro Proveedor"))
}
