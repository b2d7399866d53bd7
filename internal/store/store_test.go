package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porteo/internal/domain"
	"porteo/internal/store"
	"porteo/mocks"
)

type repoSet struct {
	shipments *mocks.MockShipmentRepo
	costs     *mocks.MockCostRepo
	preAlerts *mocks.MockPreAlertRepo
	vessel    *mocks.MockVesselTrackingRepo
	customs   *mocks.MockCustomsClearanceRepo
	equipment *mocks.MockEquipmentTrackingRepo
	suppliers *mocks.MockSupplierRepo
}

func newTestStore() (*store.Store, *repoSet) {
	r := &repoSet{
		shipments: new(mocks.MockShipmentRepo),
		costs:     new(mocks.MockCostRepo),
		preAlerts: new(mocks.MockPreAlertRepo),
		vessel:    new(mocks.MockVesselTrackingRepo),
		customs:   new(mocks.MockCustomsClearanceRepo),
		equipment: new(mocks.MockEquipmentTrackingRepo),
		suppliers: new(mocks.MockSupplierRepo),
	}
	st := store.New(r.shipments, r.costs, r.preAlerts, r.vessel, r.customs, r.equipment, r.suppliers)
	return st, r
}

// expectEmptyLists stubs every collection except shipments, which tests set
// up themselves.
func (r *repoSet) expectEmptyLists() {
	r.costs.On("List", mock.Anything).Return([]domain.CostRecord{}, nil)
	r.preAlerts.On("List", mock.Anything).Return([]domain.PreAlertRecord{}, nil)
	r.vessel.On("List", mock.Anything).Return([]domain.VesselTrackingRecord{}, nil)
	r.customs.On("List", mock.Anything).Return([]domain.CustomsClearanceRecord{}, nil)
	r.equipment.On("List", mock.Anything).Return([]domain.EquipmentTrackingRecord{}, nil)
	r.suppliers.On("List", mock.Anything).Return([]domain.Supplier{}, nil)
}

func TestLoad(t *testing.T) {
	st, r := newTestStore()
	sh := domain.Shipment{ID: uuid.New(), BLNo: "MAEU123456789"}
	r.shipments.On("List", mock.Anything).Return([]domain.Shipment{sh}, nil)
	r.expectEmptyLists()

	require.NoError(t, st.Load(context.Background()))
	got := st.Shipments()
	require.Len(t, got, 1)
	assert.Equal(t, sh.ID, got[0].ID)
}

func TestLoad_RepoError(t *testing.T) {
	st, r := newTestStore()
	r.shipments.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	err := st.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipments")
}

func TestUpdateCost(t *testing.T) {
	st, r := newTestStore()
	r.costs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	rec := &domain.CostRecord{InvoiceNo: "F-1001", Type: domain.CostTypeInland}
	require.NoError(t, st.UpdateCost(context.Background(), rec))

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.UpdatedAt.IsZero())
	require.Len(t, st.Costs(), 1)

	// Same id again must replace, not append.
	rec.Provider = "Transportes MX"
	require.NoError(t, st.UpdateCost(context.Background(), rec))
	got := st.Costs()
	require.Len(t, got, 1)
	assert.Equal(t, "Transportes MX", got[0].Provider)
}

func TestSubscribe(t *testing.T) {
	st, r := newTestStore()
	r.costs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	var seen []domain.Collection
	unsubscribe := st.Subscribe(func(c domain.Collection) { seen = append(seen, c) })

	require.NoError(t, st.UpdateCost(context.Background(), &domain.CostRecord{Type: domain.CostTypeInland}))
	require.Equal(t, []domain.Collection{domain.CollectionCosts}, seen)

	unsubscribe()
	require.NoError(t, st.UpdateCost(context.Background(), &domain.CostRecord{Type: domain.CostTypeInland}))
	assert.Len(t, seen, 1)
}

func TestBulkUpsertCosts_Chunking(t *testing.T) {
	t.Run("exactly one batch at the limit", func(t *testing.T) {
		st, r := newTestStore()
		r.costs.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)

		recs := make([]domain.CostRecord, 500)
		res, err := st.BulkUpsertCosts(context.Background(), recs)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Batches)
		assert.Equal(t, 500, res.Succeeded)
		r.costs.AssertNumberOfCalls(t, "BulkUpsert", 1)
	})

	t.Run("one over the limit splits", func(t *testing.T) {
		st, r := newTestStore()
		r.costs.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)

		recs := make([]domain.CostRecord, 501)
		res, err := st.BulkUpsertCosts(context.Background(), recs)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Batches)
		assert.Equal(t, 501, res.Succeeded)
		r.costs.AssertNumberOfCalls(t, "BulkUpsert", 2)
	})
}

func TestBulkUpsertCosts_PartialFailure(t *testing.T) {
	st, r := newTestStore()
	r.costs.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(batch []domain.CostRecord) bool {
		return len(batch) == 500
	})).Return(nil)
	r.costs.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(batch []domain.CostRecord) bool {
		return len(batch) == 1
	})).Return(errors.New("deadlock detected"))

	recs := make([]domain.CostRecord, 501)
	res, err := st.BulkUpsertCosts(context.Background(), recs)
	require.Error(t, err)
	assert.Equal(t, 500, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.Batches)
}

func TestRefresh_LastWriteWins(t *testing.T) {
	st, r := newTestStore()
	id := uuid.New()
	older := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	// Initial load: one shipment, stale fields.
	r.shipments.On("List", mock.Anything).Return([]domain.Shipment{
		{ID: id, BLNo: "MAEU123456789", Vessel: "old name", UpdatedAt: older},
	}, nil).Once()
	r.expectEmptyLists()
	require.NoError(t, st.Load(context.Background()))

	// Local edit bumps updated_at past what the repo now reports.
	r.shipments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	local := st.Shipments()[0]
	local.Vessel = "MSC Leandra"
	require.NoError(t, st.UpdateShipment(context.Background(), &local))

	// Repo still holds the stale row plus a second shipment from another client.
	other := domain.Shipment{ID: uuid.New(), BLNo: "HLCUBEN1234567", UpdatedAt: newer}
	r.shipments.On("List", mock.Anything).Return([]domain.Shipment{
		{ID: id, BLNo: "MAEU123456789", Vessel: "old name", UpdatedAt: older},
		other,
	}, nil)
	require.NoError(t, st.Refresh(context.Background()))

	got := st.Shipments()
	require.Len(t, got, 2)
	byID := map[uuid.UUID]domain.Shipment{}
	for _, sh := range got {
		byID[sh.ID] = sh
	}
	assert.Equal(t, "MSC Leandra", byID[id].Vessel, "locally newer edit must survive refresh")
	assert.Equal(t, "HLCUBEN1234567", byID[other.ID].BLNo, "rows from other clients must appear")
}

func TestBatchDeleteCosts(t *testing.T) {
	st, r := newTestStore()
	r.costs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		rec := &domain.CostRecord{Type: domain.CostTypeInland}
		require.NoError(t, st.UpdateCost(context.Background(), rec))
		ids = append(ids, rec.ID)
	}

	r.costs.On("BatchDelete", mock.Anything, ids[:2]).Return(int64(2), nil)
	res, err := st.BatchDeleteCosts(context.Background(), ids[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)

	got := st.Costs()
	require.Len(t, got, 1)
	assert.Equal(t, ids[2], got[0].ID)
}

func TestDeleteSupplier(t *testing.T) {
	st, r := newTestStore()
	r.suppliers.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	sup := &domain.Supplier{Name: "Transportes MX"}
	require.NoError(t, st.UpdateSupplier(context.Background(), sup))

	r.suppliers.On("Delete", mock.Anything, sup.ID).Return(nil)
	require.NoError(t, st.DeleteSupplier(context.Background(), sup.ID))
	assert.Empty(t, st.Suppliers())
}

func TestDeleteByBLFansOutExactMatchOnly(t *testing.T) {
	st, r := newTestStore()
	r.vessel.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	keep := &domain.VesselTrackingRecord{BLNo: "MAEU 123456789", ContainerNo: "MSKU1234567"}
	drop := &domain.VesselTrackingRecord{BLNo: "MAEU123456789", ContainerNo: "TCLU7654321"}
	require.NoError(t, st.UpdateVesselTracking(context.Background(), keep))
	require.NoError(t, st.UpdateVesselTracking(context.Background(), drop))

	r.vessel.On("DeleteByBL", mock.Anything, "MAEU123456789").Return(int64(1), nil)
	n, err := st.DeleteVesselTrackingByBL(context.Background(), "MAEU123456789")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got := st.VesselTracking()
	require.Len(t, got, 1)
	assert.Equal(t, "MAEU 123456789", got[0].BLNo)
}
