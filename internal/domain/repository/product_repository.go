package repository

import (
	"context"

	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el recurso no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, category entity.ProductCategory, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	Deactivate(ctx context.Context, id string) error
}
