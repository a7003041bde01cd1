package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMMaterialRequest línea de material al crear o actualizar un BOM.
type BOMMaterialRequest struct {
	MaterialID      string          `json:"material_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Unit            string          `json:"unit" validate:"required"`
	ScrapPercentage decimal.Decimal `json:"scrap_percentage"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SequenceNumber  int             `json:"sequence_number"`
}

// CreateBOMRequest entrada para crear un BOM con sus materiales.
type CreateBOMRequest struct {
	ProductID    string               `json:"product_id" validate:"required"`
	BatchSize    decimal.Decimal      `json:"batch_size" validate:"required"`
	IsTemplate   bool                 `json:"is_template"`
	TemplateName string               `json:"template_name"`
	Notes        string               `json:"notes"`
	Materials    []BOMMaterialRequest `json:"materials" validate:"required,min=1"`
}

// UpdateBOMRequest entrada para actualizar un BOM. Si Materials no es nil se
// reemplazan todas las líneas; si el BOM está activo se crea versión nueva.
type UpdateBOMRequest struct {
	BatchSize *decimal.Decimal     `json:"batch_size"`
	Notes     *string              `json:"notes"`
	Materials []BOMMaterialRequest `json:"materials"`
}

// LinkSubAssemblyRequest entrada para enlazar un sub-ensamble a un BOM.
type LinkSubAssemblyRequest struct {
	SubAssemblyProductID string          `json:"sub_assembly_product_id" validate:"required"`
	Quantity             decimal.Decimal `json:"quantity" validate:"required"`
	Unit                 string          `json:"unit" validate:"required"`
	ScrapPercentage      decimal.Decimal `json:"scrap_percentage"`
	SequenceNumber       int             `json:"sequence_number"`
}

// BOMMaterialResponse línea de material con datos del producto y costo con scrap.
type BOMMaterialResponse struct {
	ID               string          `json:"id"`
	BOMID            string          `json:"bom_id"`
	MaterialID       string          `json:"material_id"`
	MaterialCode     string          `json:"material_code"`
	MaterialName     string          `json:"material_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	ScrapPercentage  decimal.Decimal `json:"scrap_percentage"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	SequenceNumber   int             `json:"sequence_number"`
	IsSubAssembly    bool            `json:"is_sub_assembly"`
	SubAssemblyBOMID string          `json:"sub_assembly_bom_id,omitempty"`
}

// BOMResponse BOM completo con materiales y costo total (con scrap).
type BOMResponse struct {
	ID            string                `json:"id"`
	ProductID     string                `json:"product_id"`
	ProductCode   string                `json:"product_code"`
	ProductName   string                `json:"product_name"`
	BatchSize     decimal.Decimal       `json:"batch_size"`
	Version       int                   `json:"version"`
	Status        string                `json:"status"`
	IsTemplate    bool                  `json:"is_template"`
	TemplateName  string                `json:"template_name,omitempty"`
	EffectiveDate time.Time             `json:"effective_date"`
	Notes         string                `json:"notes,omitempty"`
	Materials     []BOMMaterialResponse `json:"materials"`
	TotalBOMCost  decimal.Decimal       `json:"total_bom_cost"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// BOMListItem resumen de BOM para listados.
type BOMListItem struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Version        int             `json:"version"`
	BatchSize      decimal.Decimal `json:"batch_size"`
	Status         string          `json:"status"`
	IsTemplate     bool            `json:"is_template"`
	MaterialsCount int             `json:"materials_count"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	EffectiveDate  time.Time       `json:"effective_date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BOMVersionResponse entrada del historial de versiones.
type BOMVersionResponse struct {
	ID            string    `json:"id"`
	BOMID         string    `json:"bom_id"`
	Version       int       `json:"version"`
	EffectiveDate time.Time `json:"effective_date"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShortageCalculationRequest entrada del cálculo de faltantes.
type ShortageCalculationRequest struct {
	ProductID        string          `json:"product_id" validate:"required"`
	ProductionQty    decimal.Decimal `json:"production_qty" validate:"required"`
	TargetLocationID string          `json:"target_location_id"`
	IncludeAllocated bool            `json:"include_allocated"`
}
