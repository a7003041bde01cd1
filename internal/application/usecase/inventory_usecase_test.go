package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/manufactura-api/internal/application/dto"
	"github.com/tu-usuario/manufactura-api/internal/application/usecase"
	"github.com/tu-usuario/manufactura-api/internal/domain"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
)

func newInventoryFixture() (*usecase.InventoryUseCase, *fakeInventoryRepo) {
	productRepo := newFakeProductRepo(
		&entity.Product{ID: "p-1", Code: "MP-001", Category: entity.CategoryRawMaterial, IsActive: true},
	)
	locationRepo := newFakeLocationRepo(
		&entity.Location{ID: "loc-1", Code: "BOD-A", Name: "Bodega A", IsActive: true},
	)
	invRepo := &fakeInventoryRepo{}
	return usecase.NewInventoryUseCase(invRepo, locationRepo, productRepo), invRepo
}

func TestInventoryUpsert(t *testing.T) {
	uc, _ := newInventoryFixture()
	ctx := context.Background()

	resp, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
		ProductID: "p-1", LocationID: "loc-1",
		AvailableQty: d("100"), AllocatedQty: d("30"), LotNumber: "L-2026-01",
	})
	require.NoError(t, err)
	assert.True(t, resp.FreeQty.Equal(d("70")))
	assert.Equal(t, "L-2026-01", resp.LotNumber)

	t.Run("reservado mayor que disponible", func(t *testing.T) {
		_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
			ProductID: "p-1", LocationID: "loc-1",
			AvailableQty: d("10"), AllocatedQty: d("11"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cantidad negativa", func(t *testing.T) {
		_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
			ProductID: "p-1", LocationID: "loc-1", AvailableQty: d("-1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
			ProductID: "nope", LocationID: "loc-1", AvailableQty: d("1"),
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("ubicación inexistente", func(t *testing.T) {
		_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
			ProductID: "p-1", LocationID: "nope", AvailableQty: d("1"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInventoryUpsert_ReemplazaMismoParProductoUbicacion(t *testing.T) {
	uc, repo := newInventoryFixture()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
		ProductID: "p-1", LocationID: "loc-1", AvailableQty: d("100"),
	})
	require.NoError(t, err)
	_, err = uc.Upsert(ctx, dto.UpsertInventoryRequest{
		ProductID: "p-1", LocationID: "loc-1", AvailableQty: d("80"), AllocatedQty: d("20"),
	})
	require.NoError(t, err)

	records, err := repo.ListByProduct(ctx, "p-1", "")
	require.NoError(t, err)
	require.Len(t, records, 1, "upsert no duplica el par (producto, ubicación)")
	assert.True(t, records[0].AvailableQty.Equal(d("80")))
}

func TestInventoryListByProduct(t *testing.T) {
	uc, _ := newInventoryFixture()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, dto.UpsertInventoryRequest{
		ProductID: "p-1", LocationID: "loc-1", AvailableQty: d("50"), AllocatedQty: d("10"),
	})
	require.NoError(t, err)

	records, err := uc.ListByProduct(ctx, "p-1", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].FreeQty.Equal(d("40")))

	_, err = uc.ListByProduct(ctx, "nope", "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLocationCreateAndList(t *testing.T) {
	uc, _ := newInventoryFixture()
	ctx := context.Background()

	created, err := uc.CreateLocation(ctx, dto.CreateLocationRequest{Code: "PLT-1", Name: "Planta 1", Type: "production"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	locations, err := uc.ListLocations(ctx, true)
	require.NoError(t, err)
	assert.Len(t, locations, 2)

	_, err = uc.CreateLocation(ctx, dto.CreateLocationRequest{Code: "", Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
