package bomcalc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/manufactura-api/internal/domain"
	bomdomain "github.com/tu-usuario/manufactura-api/internal/domain/bom"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// Las cantidades requeridas se redondean a 3 decimales en el borde del
// reporte; el escalado interno es exacto.
const reportPrecision = 3

// ShortageCalculator orquesta el cálculo de faltantes: resuelve el BOM activo,
// escala cada línea, agrega inventario por material y clasifica la severidad.
// Opera sobre los puertos de solo lectura; no muta nada.
type ShortageCalculator struct {
	productRepo   repository.ProductRepository
	bomRepo       repository.BOMRepository
	inventoryRepo repository.InventoryRepository
	locationRepo  repository.LocationRepository
}

// NewShortageCalculator construye el orquestador con sus colaboradores de lectura.
func NewShortageCalculator(
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	inventoryRepo repository.InventoryRepository,
	locationRepo repository.LocationRepository,
) *ShortageCalculator {
	return &ShortageCalculator{
		productRepo:   productRepo,
		bomRepo:       bomRepo,
		inventoryRepo: inventoryRepo,
		locationRepo:  locationRepo,
	}
}

// ShortageInput parámetros del cálculo de faltantes.
// TargetLocationID vacío agrega inventario de todas las ubicaciones.
// IncludeAllocated trata el stock reservado como libre (decisión del caller).
type ShortageInput struct {
	ProductID        string
	ProductionQty    decimal.Decimal
	TargetLocationID string
	IncludeAllocated bool
}

// Calculate produce el reporte de faltantes para producir ProductionQty
// unidades del producto. El cálculo es de un solo nivel: las líneas
// sub-ensamble se tratan como materiales normales contra el inventario del
// producto intermedio, sin expandir su propio BOM.
//
// Falla completo o retorna completo: nunca hay reporte parcial en error.
func (uc *ShortageCalculator) Calculate(ctx context.Context, in ShortageInput) (*ShortageReport, error) {
	if in.ProductionQty.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBOM
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.Category != entity.CategoryFinishedGoods {
		return nil, domain.ErrInvalidProductCategory
	}

	activeBOM, err := uc.bomRepo.GetActiveByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar BOM activo: %w", err)
	}
	if activeBOM == nil {
		return nil, domain.ErrNoActiveBOM
	}

	lines, err := uc.bomRepo.GetLines(ctx, activeBOM.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar líneas de BOM: %w", err)
	}

	report := &ShortageReport{
		ProductID:     product.ID,
		ProductCode:   product.Code,
		ProductName:   product.Name,
		ProductionQty: in.ProductionQty,
		BOMBatchSize:  activeBOM.BatchSize,
		TotalBOMCost:  decimal.Zero,
		Materials:     make([]MaterialShortage, 0, len(lines)),
	}

	for _, line := range lines {
		material, err := uc.productRepo.GetByID(ctx, line.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("consultar material %s: %w", line.MaterialID, err)
		}
		if material == nil {
			// Línea huérfana (material despublicado): se omite en lugar de
			// invalidar el reporte completo, igual que el resto del sistema.
			continue
		}

		requiredQty, err := bomdomain.RequiredQuantity(
			activeBOM.BatchSize, line.QuantityPerBatch, line.ScrapPercentage, in.ProductionQty,
		)
		if err != nil {
			return nil, err
		}
		requiredQty = requiredQty.Round(reportPrecision)

		report.TotalBOMCost = report.TotalBOMCost.Add(requiredQty.Mul(line.UnitCost))

		availableQty, allocatedQty, breakdown, err := uc.aggregateInventory(ctx, line.MaterialID, in.TargetLocationID)
		if err != nil {
			return nil, err
		}

		freeQty := availableQty.Sub(allocatedQty)
		if in.IncludeAllocated {
			freeQty = availableQty
		}

		status, procurementNeeded := bomdomain.Classify(requiredQty, freeQty)

		report.Materials = append(report.Materials, MaterialShortage{
			MaterialID:        material.ID,
			MaterialCode:      material.Code,
			MaterialName:      material.Name,
			RequiredQty:       requiredQty,
			Unit:              material.Unit,
			AvailableQty:      availableQty,
			AllocatedQty:      allocatedQty,
			FreeQty:           freeQty,
			ShortageQty:       bomdomain.ShortageQty(requiredQty, freeQty),
			ShortageStatus:    status,
			ProcurementNeeded: procurementNeeded,
			LocationBreakdown: breakdown,
		})
	}

	report.Summary = summarize(report.Materials)
	return report, nil
}

// aggregateInventory suma disponible y reservado del material a través de las
// ubicaciones que apliquen y arma el desglose por ubicación.
func (uc *ShortageCalculator) aggregateInventory(ctx context.Context, materialID, locationID string) (decimal.Decimal, decimal.Decimal, []LocationStock, error) {
	records, err := uc.inventoryRepo.ListByProduct(ctx, materialID, locationID)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, fmt.Errorf("consultar inventario de %s: %w", materialID, err)
	}

	available := decimal.Zero
	allocated := decimal.Zero
	var breakdown []LocationStock

	for _, rec := range records {
		available = available.Add(rec.AvailableQty)
		allocated = allocated.Add(rec.AllocatedQty)

		locationName := "Unknown"
		if loc, err := uc.locationRepo.GetByID(ctx, rec.LocationID); err == nil && loc != nil {
			locationName = loc.Name
		}

		breakdown = append(breakdown, LocationStock{
			LocationID:   rec.LocationID,
			LocationName: locationName,
			AvailableQty: rec.AvailableQty,
			AllocatedQty: rec.AllocatedQty,
			FreeQty:      rec.FreeQty(),
		})
	}

	return available, allocated, breakdown, nil
}

// summarize cuenta materiales por estado. CanProduce exige que todos los
// materiales estén Sufficient.
func summarize(materials []MaterialShortage) ShortageSummary {
	s := ShortageSummary{TotalMaterials: len(materials)}
	for _, m := range materials {
		switch m.ShortageStatus {
		case bomdomain.StatusSufficient:
			s.Sufficient++
		case bomdomain.StatusModerate:
			s.Moderate++
		case bomdomain.StatusCritical:
			s.Critical++
		case bomdomain.StatusOutOfStock:
			s.OutOfStock++
		}
	}
	s.ProcurementRequired = s.Moderate + s.Critical + s.OutOfStock
	s.CanProduce = s.Sufficient == s.TotalMaterials
	s.TotalShortageItems = s.TotalMaterials - s.Sufficient
	return s
}
