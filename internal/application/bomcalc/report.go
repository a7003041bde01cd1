package bomcalc

import (
	"github.com/shopspring/decimal"

	bomdomain "github.com/tu-usuario/manufactura-api/internal/domain/bom"
)

// Estructuras calculadas y efímeras: se construyen completas en cada llamada
// y nunca se persisten.

// LocationStock desglose de existencias de un material en una ubicación.
type LocationStock struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	AllocatedQty decimal.Decimal `json:"allocated_qty"`
	FreeQty      decimal.Decimal `json:"free_qty"`
}

// MaterialShortage detalle de faltante por material del BOM.
type MaterialShortage struct {
	MaterialID        string                   `json:"material_id"`
	MaterialCode      string                   `json:"material_code"`
	MaterialName      string                   `json:"material_name"`
	RequiredQty       decimal.Decimal          `json:"required_qty"`
	Unit              string                   `json:"unit"`
	AvailableQty      decimal.Decimal          `json:"available_qty"`
	AllocatedQty      decimal.Decimal          `json:"allocated_qty"`
	FreeQty           decimal.Decimal          `json:"free_qty"`
	ShortageQty       decimal.Decimal          `json:"shortage_qty"`
	ShortageStatus    bomdomain.ShortageStatus `json:"shortage_status"`
	ProcurementNeeded bool                     `json:"procurement_needed"`
	LocationBreakdown []LocationStock          `json:"location_breakdown,omitempty"`
}

// ShortageSummary conteos por estado y bandera de producibilidad.
type ShortageSummary struct {
	TotalMaterials      int  `json:"total_materials"`
	Sufficient          int  `json:"sufficient"`
	Moderate            int  `json:"moderate"`
	Critical            int  `json:"critical"`
	OutOfStock          int  `json:"out_of_stock"`
	ProcurementRequired int  `json:"procurement_required"`
	CanProduce          bool `json:"can_produce"`
	TotalShortageItems  int  `json:"total_shortage_items"`
}

// ShortageReport reporte completo de faltantes para una orden de producción.
// Es una vista best-effort a un punto en el tiempo: las lecturas de BOM e
// inventario no son transaccionalmente consistentes entre sí, por lo que el
// reporte es consultivo y no sirve como única compuerta para reservar stock.
type ShortageReport struct {
	ProductID     string             `json:"product_id"`
	ProductCode   string             `json:"product_code"`
	ProductName   string             `json:"product_name"`
	ProductionQty decimal.Decimal    `json:"production_qty"`
	BOMBatchSize  decimal.Decimal    `json:"bom_batch_size"`
	TotalBOMCost  decimal.Decimal    `json:"total_bom_cost"`
	Materials     []MaterialShortage `json:"materials"`
	Summary       ShortageSummary    `json:"summary"`
}

// ExplodedLine entrada consolidada del BOM explotado multi-nivel.
// Level es la profundidad de recorrido donde apareció el material por primera vez.
type ExplodedLine struct {
	MaterialID      string          `json:"material_id"`
	MaterialCode    string          `json:"material_code"`
	MaterialName    string          `json:"material_name"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	Unit            string          `json:"unit"`
	ScrapPercentage decimal.Decimal `json:"scrap_percentage"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Level           int             `json:"level"`
}
