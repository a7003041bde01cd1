package usecase

import (
	"context"

	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// BOMTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las mutaciones multi-tabla de
// BOM (cabecera + líneas + snapshot de versión, o activar + superseder
// hermanos) sean atómicas.
type BOMTxRunner interface {
	Run(ctx context.Context, fn func(
		bomRepo repository.BOMRepository,
		productRepo repository.ProductRepository,
	) error) error
}
