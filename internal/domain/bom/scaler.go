package bom

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/manufactura-api/internal/domain"
)

// RequiredQuantity escala una línea de BOM a la cantidad de producción pedida,
// inflando por el porcentaje de scrap (servicio de dominio, aritmética decimal exacta):
//
//	requerido = (cantProducción / tamañoLote) * cantLínea * (1 + scrap/100)
//
// No redondea: el redondeo ocurre solo en el borde de presentación.
// Rechaza defensivamente entradas no positivas con ErrInvalidBOM aunque la
// validación principal ocurre al crear el BOM.
func RequiredQuantity(batchSize, lineQuantity, scrapPercentage, productionQty decimal.Decimal) (decimal.Decimal, error) {
	if batchSize.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidBOM
	}
	if lineQuantity.LessThanOrEqual(decimal.Zero) || productionQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidBOM
	}
	scrapFactor := decimal.New(1, 0).Add(scrapPercentage.Div(decimal.New(100, 0)))
	return productionQty.Div(batchSize).Mul(lineQuantity).Mul(scrapFactor), nil
}
