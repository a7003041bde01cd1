package repository

import (
	"context"

	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
)

// InventoryRepository puerto de lectura/escritura del libro de inventario
// por (producto, ubicación).
type InventoryRepository interface {
	// ListByProduct devuelve los registros del producto; locationID vacío = todas las ubicaciones.
	ListByProduct(ctx context.Context, productID, locationID string) ([]*entity.InventoryRecord, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.InventoryRecord, error)
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
}

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Location, error)
}
