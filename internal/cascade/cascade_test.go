package cascade_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porteo/internal/cascade"
	"porteo/internal/domain"
	"porteo/internal/store"
	"porteo/mocks"
)

// newPropagator builds a Propagator over a store whose repositories accept
// every write. deleted controls the row counts the DeleteByBL calls report,
// which is what DeleteBooking sums to decide between success and not-found.
func newPropagator(deleted int64) (*cascade.Propagator, *store.Store) {
	shipments := new(mocks.MockShipmentRepo)
	costs := new(mocks.MockCostRepo)
	preAlerts := new(mocks.MockPreAlertRepo)
	vessel := new(mocks.MockVesselTrackingRepo)
	customs := new(mocks.MockCustomsClearanceRepo)
	equipment := new(mocks.MockEquipmentTrackingRepo)
	suppliers := new(mocks.MockSupplierRepo)

	shipments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	shipments.On("DeleteByBL", mock.Anything, mock.Anything).Return(deleted, nil)
	preAlerts.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	preAlerts.On("DeleteByBooking", mock.Anything, mock.Anything).Return(deleted, nil)
	vessel.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	vessel.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)
	vessel.On("DeleteByBL", mock.Anything, mock.Anything).Return(deleted, nil)
	customs.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	customs.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)
	customs.On("DeleteByBL", mock.Anything, mock.Anything).Return(deleted, nil)
	equipment.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)
	equipment.On("DeleteByBL", mock.Anything, mock.Anything).Return(deleted, nil)

	st := store.New(shipments, costs, preAlerts, vessel, customs, equipment, suppliers)
	return cascade.New(st), st
}

func seaInput() cascade.ExtractionInput {
	etd := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	eta := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	return cascade.ExtractionInput{
		PreAlert: domain.PreAlertRecord{
			BookingAbw:   "MAEU123456789",
			Model:        "X5 Hybrid",
			InvoiceNo:    "F-1001",
			ShippingLine: "Maersk",
			POL:          "Shanghai",
			POD:          "Manzanillo",
			ETD:          &etd,
			ETA:          &eta,
		},
		Containers:      []string{"MSKU1234567", "TCLU7654321"},
		CreateEquipment: true,
	}
}

func TestProcessExtraction(t *testing.T) {
	p, st := newPropagator(0)
	merged, err := p.ProcessExtraction(context.Background(), seaInput())
	require.NoError(t, err)
	require.NotNil(t, merged)

	preAlerts := st.PreAlerts()
	require.Len(t, preAlerts, 1)
	assert.Equal(t, "MAEU123456789", preAlerts[0].BookingAbw)
	assert.Equal(t, domain.StringList{"MSKU1234567", "TCLU7654321"}, preAlerts[0].LinkedContainers)

	vessel := st.VesselTracking()
	require.Len(t, vessel, 2)
	for _, row := range vessel {
		assert.Equal(t, "MAEU123456789", row.BLNo)
		assert.Equal(t, "Shanghai", row.POL)
		assert.Equal(t, "Manzanillo", row.POD)
		assert.Equal(t, "X5 Hybrid", row.Model)
	}
	assert.ElementsMatch(t, []string{"MSKU1234567", "TCLU7654321"},
		[]string{vessel[0].ContainerNo, vessel[1].ContainerNo})

	customs := st.CustomsClearance()
	require.Len(t, customs, 2)

	shipments := st.Shipments()
	require.Len(t, shipments, 1)
	assert.Equal(t, domain.ShipmentStatusPlanned, shipments[0].Status)
	assert.Equal(t, domain.StringList{"MSKU1234567", "TCLU7654321"}, shipments[0].Containers)

	equipment := st.EquipmentTracking()
	require.Len(t, equipment, 2)
}

func TestProcessExtraction_Idempotent(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()

	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)
	_, err = p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	assert.Len(t, st.PreAlerts(), 1)
	assert.Len(t, st.VesselTracking(), 2)
	assert.Len(t, st.CustomsClearance(), 2)
	assert.Len(t, st.Shipments(), 1)
	assert.Len(t, st.EquipmentTracking(), 2)
}

func TestProcessExtraction_PreservesManualFields(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()

	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	// Manual edits: vessel contract data, customs pedimento, shipment status
	// and freight cost.
	vRow := st.VesselTracking()[0]
	vRow.Quantity = 4
	vRow.ProjectType = "OEM"
	vRow.ContractNo = "CT-889"
	require.NoError(t, st.UpdateVesselTracking(ctx, &vRow))

	cRow := st.CustomsClearance()[0]
	cRow.PedimentoNo = "26 47 3821 6001234"
	cRow.CustomsBroker = "Agencia Patron"
	require.NoError(t, st.UpdateCustomsClearance(ctx, &cRow))

	sh := st.Shipments()[0]
	sh.Status = domain.ShipmentStatusInTransit
	sh.FreightCost = decimal.RequireFromString("2400")
	require.NoError(t, st.UpdateShipment(ctx, &sh))

	// Re-extraction recreates the per-container rows but keeps manual data.
	_, err = p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	for _, row := range st.VesselTracking() {
		assert.Equal(t, 4, row.Quantity)
		assert.Equal(t, "OEM", row.ProjectType)
		assert.Equal(t, "CT-889", row.ContractNo)
	}
	for _, row := range st.CustomsClearance() {
		assert.Equal(t, "26 47 3821 6001234", row.PedimentoNo)
		assert.Equal(t, "Agencia Patron", row.CustomsBroker)
	}
	got := st.Shipments()
	require.Len(t, got, 1)
	assert.Equal(t, domain.ShipmentStatusInTransit, got[0].Status)
	assert.True(t, got[0].FreightCost.Equal(decimal.RequireFromString("2400")))
}

func TestProcessExtraction_NoContainers(t *testing.T) {
	p, st := newPropagator(0)
	in := seaInput()
	in.Containers = nil

	_, err := p.ProcessExtraction(context.Background(), in)
	require.NoError(t, err)

	vessel := st.VesselTracking()
	require.Len(t, vessel, 1)
	assert.Equal(t, "Bulk/LCL", vessel[0].ContainerNo)

	customs := st.CustomsClearance()
	require.Len(t, customs, 1)
	assert.Equal(t, "Bulk/LCL", customs[0].ContainerNo)

	equipment := st.EquipmentTracking()
	require.Len(t, equipment, 1)
	assert.Equal(t, "Multiple", equipment[0].ContainerNo)
}

func TestProcessExtraction_MergePrecedence(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()

	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	// A later extraction of the same booking with a placeholder model and a
	// missing POL must not clobber known values, but a new invoice wins.
	in := seaInput()
	in.PreAlert.Model = cascade.ModelPlaceholder
	in.PreAlert.POL = ""
	in.PreAlert.InvoiceNo = "F-1002"

	merged, err := p.ProcessExtraction(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "X5 Hybrid", merged.Model)
	assert.Equal(t, "Shanghai", merged.POL)
	assert.Equal(t, "F-1002", merged.InvoiceNo)

	preAlerts := st.PreAlerts()
	require.Len(t, preAlerts, 1)
	assert.Equal(t, "X5 Hybrid", preAlerts[0].Model)
}

func TestProcessExtraction_BookingFormattingVariantsMerge(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()

	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	in := seaInput()
	in.PreAlert.BookingAbw = "maeu 123-456-789"
	_, err = p.ProcessExtraction(ctx, in)
	require.NoError(t, err)

	assert.Len(t, st.PreAlerts(), 1, "formatting variants of one booking must not fork records")
	assert.Len(t, st.Shipments(), 1)
}

func TestProcessExtraction_MissingBooking(t *testing.T) {
	p, _ := newPropagator(0)
	in := seaInput()
	in.PreAlert.BookingAbw = "  --  "

	_, err := p.ProcessExtraction(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrMissingBooking)
}

func TestDeleteBooking(t *testing.T) {
	t.Run("removes rows across collections", func(t *testing.T) {
		p, st := newPropagator(1)
		ctx := context.Background()
		_, err := p.ProcessExtraction(ctx, seaInput())
		require.NoError(t, err)

		require.NoError(t, p.DeleteBooking(ctx, "MAEU123456789"))
		assert.Empty(t, st.PreAlerts())
		assert.Empty(t, st.VesselTracking())
		assert.Empty(t, st.CustomsClearance())
		assert.Empty(t, st.Shipments())
		assert.Empty(t, st.EquipmentTracking())
	})

	t.Run("unknown booking", func(t *testing.T) {
		p, _ := newPropagator(0)
		err := p.DeleteBooking(context.Background(), "ZZZZ0000000")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})

	t.Run("empty booking", func(t *testing.T) {
		p, _ := newPropagator(0)
		err := p.DeleteBooking(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrMissingBooking)
	})
}

func TestBroadcastVesselSharedFields(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()
	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	src := st.VesselTracking()[0]
	src.Vessel = "MSC Leandra"
	src.Voyage = "214E"
	src.Quantity = 6
	require.NoError(t, st.UpdateVesselTracking(ctx, &src))

	n, err := p.BroadcastVesselSharedFields(ctx, &src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	containers := map[string]bool{}
	for _, row := range st.VesselTracking() {
		assert.Equal(t, "MSC Leandra", row.Vessel)
		assert.Equal(t, "214E", row.Voyage)
		assert.Equal(t, 6, row.Quantity)
		containers[row.ContainerNo] = true
	}
	assert.Len(t, containers, 2, "per-container identity must survive a broadcast")
}

func TestBroadcastCustomsSharedFields(t *testing.T) {
	p, st := newPropagator(0)
	ctx := context.Background()
	_, err := p.ProcessExtraction(ctx, seaInput())
	require.NoError(t, err)

	review := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	src := st.CustomsClearance()[0]
	src.PedimentoNo = "26 47 3821 6001234"
	src.ReviewDate = &review
	require.NoError(t, st.UpdateCustomsClearance(ctx, &src))

	n, err := p.BroadcastCustomsSharedFields(ctx, &src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, row := range st.CustomsClearance() {
		assert.Equal(t, "26 47 3821 6001234", row.PedimentoNo)
		require.NotNil(t, row.ReviewDate)
		assert.True(t, review.Equal(*row.ReviewDate))
	}
}
