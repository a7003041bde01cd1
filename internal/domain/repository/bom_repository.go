package repository

import (
	"context"

	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
)

// SubAssemblyLink arista del grafo de sub-ensambles: el BOM origen contiene
// al BOM destino como sub-ensamble. Usado por la detección de ciclos.
type SubAssemblyLink struct {
	BOMID            string
	SubAssemblyBOMID string
}

// BOMRepository puerto de persistencia para BOMs, líneas y versiones.
// GetActiveByProduct y GetByID devuelven (nil, nil) cuando no existe.
type BOMRepository interface {
	Create(ctx context.Context, bom *entity.BOM) error
	GetByID(ctx context.Context, id string) (*entity.BOM, error)
	GetActiveByProduct(ctx context.Context, productID string) (*entity.BOM, error)
	Update(ctx context.Context, bom *entity.BOM) error
	SetStatus(ctx context.Context, id string, status entity.BOMStatus) error
	// SupersedeSiblings pasa a Superseded todos los BOMs del producto excepto el indicado.
	SupersedeSiblings(ctx context.Context, productID, exceptBOMID string) error
	List(ctx context.Context, productID string, onlyActive bool, limit, offset int) ([]*entity.BOM, error)

	GetLines(ctx context.Context, bomID string) ([]*entity.BOMLine, error)
	CreateLine(ctx context.Context, line *entity.BOMLine) error
	UpdateLine(ctx context.Context, line *entity.BOMLine) error
	DeleteLine(ctx context.Context, lineID string) error
	DeleteLines(ctx context.Context, bomID string) error

	// SubAssemblyLinks devuelve las aristas sub-ensamble salientes de un BOM.
	SubAssemblyLinks(ctx context.Context, bomID string) ([]SubAssemblyLink, error)

	CreateVersion(ctx context.Context, version *entity.BOMVersion) error
	ListVersions(ctx context.Context, bomID string) ([]*entity.BOMVersion, error)
}
