package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertInventoryRequest entrada para fijar existencias de un producto en una ubicación.
type UpsertInventoryRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	LocationID   string          `json:"location_id" validate:"required"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	AllocatedQty decimal.Decimal `json:"allocated_qty"`
	LotNumber    string          `json:"lot_number"`
}

// InventoryRecordResponse existencias por (producto, ubicación) con cantidad libre derivada.
type InventoryRecordResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	AllocatedQty decimal.Decimal `json:"allocated_qty"`
	FreeQty      decimal.Decimal `json:"free_qty"`
	LotNumber    string          `json:"lot_number,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}
