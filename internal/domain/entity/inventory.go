package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord existencias de un producto en una ubicación.
// Invariante: 0 <= AllocatedQty <= AvailableQty. FreeQty es derivado, nunca se almacena.
type InventoryRecord struct {
	ID           string
	ProductID    string
	LocationID   string
	AvailableQty decimal.Decimal
	AllocatedQty decimal.Decimal
	LotNumber    string
	UpdatedAt    time.Time
}

// FreeQty devuelve la cantidad libre: disponible menos reservado.
func (r *InventoryRecord) FreeQty() decimal.Decimal {
	return r.AvailableQty.Sub(r.AllocatedQty)
}

// Location ubicación física de inventario (bodega, planta, zona).
type Location struct {
	ID        string
	Code      string
	Name      string
	Type      string // warehouse, production, staging
	IsActive  bool
	CreatedAt time.Time
}
