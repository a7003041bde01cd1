package bomcalc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/manufactura-api/internal/domain"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// MaxExplosionDepth tope defensivo de anidamiento de sub-ensambles. El grafo
// se valida acíclico al crear cada enlace, así que alcanzar este límite indica
// un invariante roto en los datos, no un BOM legítimo.
const MaxExplosionDepth = 32

var one = decimal.New(1, 0)
var hundred = decimal.New(100, 0)

// Exploder aplana un BOM multi-nivel: recorre los enlaces de sub-ensamble
// propagando multiplicadores con inflación de scrap y consolida las hojas
// (materias primas) por material.
type Exploder struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

// NewExploder construye el motor de explosión.
func NewExploder(bomRepo repository.BOMRepository, productRepo repository.ProductRepository) *Exploder {
	return &Exploder{bomRepo: bomRepo, productRepo: productRepo}
}

// frame estado de recorrido de un BOM: sus líneas, el índice de la siguiente
// línea por procesar y el multiplicador acumulado desde la raíz.
type frame struct {
	lines      []*entity.BOMLine
	next       int
	multiplier decimal.Decimal
}

// Explode devuelve la lista aplanada y consolidada de materiales del BOM con
// cantidades y costos multiplicados a través de todos los niveles.
//
// El recorrido es DFS con pila explícita (no recursión nativa): la profundidad
// queda acotada por MaxExplosionDepth y un grafo cíclico produce ErrBOMTooDeep
// en lugar de agotar el stack.
func (uc *Exploder) Explode(ctx context.Context, bomID string) ([]ExplodedLine, error) {
	root, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, fmt.Errorf("consultar BOM: %w", err)
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}

	rootLines, err := uc.bomRepo.GetLines(ctx, bomID)
	if err != nil {
		return nil, fmt.Errorf("consultar líneas de BOM: %w", err)
	}

	var entries []ExplodedLine
	stack := []*frame{{lines: rootLines, multiplier: one}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.lines) {
			stack = stack[:len(stack)-1]
			continue
		}
		line := f.lines[f.next]
		f.next++

		lineQty := line.QuantityPerBatch.Mul(f.multiplier)
		scrapFactor := one.Add(line.ScrapPercentage.Div(hundred))
		totalQty := lineQty.Mul(scrapFactor)

		if line.IsSubAssembly && line.SubAssemblyBOMID != "" {
			if len(stack) >= MaxExplosionDepth {
				return nil, domain.ErrBOMTooDeep
			}
			subLines, err := uc.bomRepo.GetLines(ctx, line.SubAssemblyBOMID)
			if err != nil {
				return nil, fmt.Errorf("consultar sub-ensamble %s: %w", line.SubAssemblyBOMID, err)
			}
			stack = append(stack, &frame{lines: subLines, multiplier: totalQty})
			continue
		}

		entry := ExplodedLine{
			MaterialID:      line.MaterialID,
			QuantityPerUnit: lineQty,
			TotalQuantity:   totalQty,
			Unit:            line.Unit,
			ScrapPercentage: line.ScrapPercentage,
			UnitCost:        line.UnitCost,
			TotalCost:       totalQty.Mul(line.UnitCost),
			Level:           len(stack) - 1,
		}
		if material, err := uc.productRepo.GetByID(ctx, line.MaterialID); err == nil && material != nil {
			entry.MaterialCode = material.Code
			entry.MaterialName = material.Name
		}
		entries = append(entries, entry)
	}

	return consolidate(entries), nil
}

// consolidate suma cantidades y costos de entradas que comparten material,
// preservando el orden de primera aparición. Los demás campos (unidad, costo
// unitario, nivel) quedan de la primera entrada vista.
func consolidate(entries []ExplodedLine) []ExplodedLine {
	index := make(map[string]int, len(entries))
	result := make([]ExplodedLine, 0, len(entries))

	for _, e := range entries {
		if i, ok := index[e.MaterialID]; ok {
			result[i].TotalQuantity = result[i].TotalQuantity.Add(e.TotalQuantity)
			result[i].TotalCost = result[i].TotalCost.Add(e.TotalCost)
			continue
		}
		index[e.MaterialID] = len(result)
		result = append(result, e)
	}
	return result
}

// TotalCostWithSubAssemblies costo total de materiales a través de todos los
// niveles del BOM.
func (uc *Exploder) TotalCostWithSubAssemblies(ctx context.Context, bomID string) (decimal.Decimal, error) {
	exploded, err := uc.Explode(ctx, bomID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range exploded {
		total = total.Add(e.TotalCost)
	}
	return total, nil
}
