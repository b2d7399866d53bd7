package recon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porteo/internal/domain"
)

func TestFindDuplicates_GroupsByNormalizedUUID(t *testing.T) {
	linked := domain.CostRecord{
		ID:         uuid.New(),
		ShipmentID: uuid.New(),
		UUID:       "A1B2-C3D4",
	}
	withBL := domain.CostRecord{
		ID:          uuid.New(),
		UUID:        "a1b2c3d4",
		ExtractedBL: "MAEU123456789",
	}
	bare := domain.CostRecord{
		ID:   uuid.New(),
		UUID: "A1B2 C3D4",
	}
	unrelated := domain.CostRecord{
		ID:   uuid.New(),
		UUID: "FFFF0000",
	}

	groups := FindDuplicates([]domain.CostRecord{bare, unrelated, withBL, linked})

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "A1B2C3D4", g.UUID)
	assert.Equal(t, linked.ID, g.Keep.ID)
	require.Len(t, g.Discard, 2)
	assert.Equal(t, withBL.ID, g.Discard[0].ID)
	assert.Equal(t, bare.ID, g.Discard[1].ID)
}

func TestFindDuplicates_DeterministicAcrossInputOrder(t *testing.T) {
	var costs []domain.CostRecord
	for i := 0; i < 4; i++ {
		costs = append(costs, domain.CostRecord{ID: uuid.New(), UUID: "DUP-001"})
	}
	costs = append(costs,
		domain.CostRecord{ID: uuid.New(), UUID: "DUP-002"},
		domain.CostRecord{ID: uuid.New(), UUID: "DUP-002"},
	)

	forward := FindDuplicates(costs)

	reversed := make([]domain.CostRecord, len(costs))
	for i, c := range costs {
		reversed[len(costs)-1-i] = c
	}
	backward := FindDuplicates(reversed)

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].UUID, backward[i].UUID)
		assert.Equal(t, forward[i].Keep.ID, backward[i].Keep.ID)
		require.Equal(t, len(forward[i].Discard), len(backward[i].Discard))
		for j := range forward[i].Discard {
			assert.Equal(t, forward[i].Discard[j].ID, backward[i].Discard[j].ID)
		}
	}
}

func TestFindDuplicates_SentinelAndEmptyNeverGroup(t *testing.T) {
	costs := []domain.CostRecord{
		{ID: uuid.New(), UUID: "-"},
		{ID: uuid.New(), UUID: "-"},
		{ID: uuid.New(), UUID: ""},
		{ID: uuid.New(), UUID: ""},
	}

	assert.Empty(t, FindDuplicates(costs))
}

func TestFindIngestionDuplicate_UUIDEquality(t *testing.T) {
	existing := []domain.CostRecord{{
		ID:     uuid.New(),
		UUID:   "A1B2-C3D4",
		Amount: decimal.RequireFromString("500.00"),
	}}
	candidate := domain.CostRecord{
		ID:     uuid.New(),
		UUID:   "a1b2c3d4",
		Amount: decimal.RequireFromString("999.00"),
	}

	dup := FindIngestionDuplicate(existing, &candidate)

	require.NotNil(t, dup)
	assert.Equal(t, existing[0].ID, dup.ID)
}

func TestFindIngestionDuplicate_InvoiceContainment(t *testing.T) {
	existing := []domain.CostRecord{{
		ID:        uuid.New(),
		InvoiceNo: "F-1001",
		Amount:    decimal.RequireFromString("500.00"),
	}}

	near := domain.CostRecord{
		ID:        uuid.New(),
		InvoiceNo: "F1001",
		Amount:    decimal.RequireFromString("500.50"),
	}
	dup := FindIngestionDuplicate(existing, &near)
	require.NotNil(t, dup)
	assert.Equal(t, existing[0].ID, dup.ID)

	far := domain.CostRecord{
		ID:        uuid.New(),
		InvoiceNo: "F1001",
		Amount:    decimal.RequireFromString("502.00"),
	}
	assert.Nil(t, FindIngestionDuplicate(existing, &far))
}

func TestFindIngestionDuplicate_SkipsSelfAndBlankInvoices(t *testing.T) {
	id := uuid.New()
	existing := []domain.CostRecord{
		{ID: id, UUID: "A1B2C3D4", Amount: decimal.RequireFromString("500.00")},
		{ID: uuid.New(), InvoiceNo: "", Amount: decimal.RequireFromString("500.00")},
	}
	candidate := domain.CostRecord{
		ID:        id,
		UUID:      "A1B2C3D4",
		InvoiceNo: "",
		Amount:    decimal.RequireFromString("500.00"),
	}

	assert.Nil(t, FindIngestionDuplicate(existing, &candidate))
}
