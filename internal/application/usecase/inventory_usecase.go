package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/manufactura-api/internal/application/dto"
	"github.com/tu-usuario/manufactura-api/internal/domain"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// InventoryUseCase existencias por (producto, ubicación) y catálogo de
// ubicaciones. Invariante del libro: 0 <= reservado <= disponible.
type InventoryUseCase struct {
	inventoryRepo repository.InventoryRepository
	locationRepo  repository.LocationRepository
	productRepo   repository.ProductRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(inventoryRepo repository.InventoryRepository, locationRepo repository.LocationRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{
		inventoryRepo: inventoryRepo,
		locationRepo:  locationRepo,
		productRepo:   productRepo,
	}
}

// Upsert fija las existencias de un producto en una ubicación.
func (uc *InventoryUseCase) Upsert(ctx context.Context, in dto.UpsertInventoryRequest) (*dto.InventoryRecordResponse, error) {
	if in.AvailableQty.IsNegative() || in.AllocatedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.AllocatedQty.GreaterThan(in.AvailableQty) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	record := &entity.InventoryRecord{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		LocationID:   in.LocationID,
		AvailableQty: in.AvailableQty,
		AllocatedQty: in.AllocatedQty,
		LotNumber:    in.LotNumber,
		UpdatedAt:    time.Now(),
	}
	if err := uc.inventoryRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return toInventoryResponse(record), nil
}

// ListByProduct devuelve existencias de un producto; locationID vacío = todas.
func (uc *InventoryUseCase) ListByProduct(ctx context.Context, productID, locationID string) ([]dto.InventoryRecordResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	records, err := uc.inventoryRepo.ListByProduct(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *toInventoryResponse(r))
	}
	return out, nil
}

// ListByLocation devuelve las existencias de una ubicación.
func (uc *InventoryUseCase) ListByLocation(ctx context.Context, locationID string, page dto.PageRequest) ([]dto.InventoryRecordResponse, error) {
	page.DefaultPage()
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	records, err := uc.inventoryRepo.ListByLocation(ctx, locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *toInventoryResponse(r))
	}
	return out, nil
}

// CreateLocation crea una ubicación de inventario.
func (uc *InventoryUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.Location{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListLocations devuelve las ubicaciones registradas.
func (uc *InventoryUseCase) ListLocations(ctx context.Context, onlyActive bool) ([]dto.LocationResponse, error) {
	locations, err := uc.locationRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

func toInventoryResponse(r *entity.InventoryRecord) *dto.InventoryRecordResponse {
	return &dto.InventoryRecordResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		AvailableQty: r.AvailableQty,
		AllocatedQty: r.AllocatedQty,
		FreeQty:      r.FreeQty(),
		LotNumber:    r.LotNumber,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:       l.ID,
		Code:     l.Code,
		Name:     l.Name,
		Type:     l.Type,
		IsActive: l.IsActive,
	}
}
