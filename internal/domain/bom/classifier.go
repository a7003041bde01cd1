package bom

import "github.com/shopspring/decimal"

// ShortageStatus clasificación cerrada de severidad de faltante por material.
type ShortageStatus string

const (
	StatusSufficient ShortageStatus = "Sufficient"
	StatusModerate   ShortageStatus = "Moderate"
	StatusCritical   ShortageStatus = "Critical"
	StatusOutOfStock ShortageStatus = "Out of Stock"
)

var half = decimal.New(5, -1) // 0.5

// Classify asigna el estado de faltante de un material y si requiere compra.
// El orden de evaluación es contractual (gana la primera coincidencia) y los
// límites de suficiencia y moderado son inclusivos (>=):
//
//	libre >= requerido        -> Sufficient (sin compra)
//	libre == 0                -> Out of Stock
//	libre >= requerido * 0.5  -> Moderate
//	en otro caso              -> Critical
//
// Un requerido == 0 cae en la primera rama (0 >= 0) y se trata como Sufficient
// sin importar el inventario libre.
func Classify(requiredQty, freeQty decimal.Decimal) (ShortageStatus, bool) {
	switch {
	case freeQty.GreaterThanOrEqual(requiredQty):
		return StatusSufficient, false
	case freeQty.IsZero():
		return StatusOutOfStock, true
	case freeQty.GreaterThanOrEqual(requiredQty.Mul(half)):
		return StatusModerate, true
	default:
		return StatusCritical, true
	}
}

// ShortageQty cantidad faltante: max(0, requerido - libre).
func ShortageQty(requiredQty, freeQty decimal.Decimal) decimal.Decimal {
	s := requiredQty.Sub(freeQty)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}
