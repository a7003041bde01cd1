package bomcalc

import (
	"context"
	"fmt"

	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// CycleChecker valida en tiempo de escritura que agregar un enlace de
// sub-ensamble no introduzca un ciclo en el grafo de BOMs. El camino de
// lectura (Explode) asume aciclicidad gracias a este chequeo.
type CycleChecker struct {
	bomRepo repository.BOMRepository
}

// NewCycleChecker construye el verificador.
func NewCycleChecker(bomRepo repository.BOMRepository) *CycleChecker {
	return &CycleChecker{bomRepo: bomRepo}
}

// WouldCycle indica si enlazar childBOMID como sub-ensamble de parentBOMID
// crearía una referencia circular. Recorre en BFS el grafo de sub-ensambles
// del hijo con conjunto de visitados; si el padre es alcanzable desde el hijo,
// el enlace cerraría un ciclo.
func (c *CycleChecker) WouldCycle(ctx context.Context, parentBOMID, childBOMID string) (bool, error) {
	visited := make(map[string]bool)
	queue := []string{childBOMID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if current == parentBOMID {
			return true, nil
		}

		links, err := c.bomRepo.SubAssemblyLinks(ctx, current)
		if err != nil {
			return false, fmt.Errorf("consultar sub-ensambles de %s: %w", current, err)
		}
		for _, link := range links {
			if link.SubAssemblyBOMID != "" && !visited[link.SubAssemblyBOMID] {
				queue = append(queue, link.SubAssemblyBOMID)
			}
		}
	}
	return false, nil
}
