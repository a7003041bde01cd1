package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/manufactura-api/internal/application/bomcalc"
	"github.com/tu-usuario/manufactura-api/internal/application/dto"
	"github.com/tu-usuario/manufactura-api/internal/domain"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

var hundred = decimal.New(100, 0)

// BOMUseCase gestión de BOMs: creación, consulta con costos, versionado,
// activación y enlaces de sub-ensamble con validación de ciclos.
//
// Las mutaciones estructurales sobre un BOM activo incrementan la versión y
// guardan un snapshot inmutable del estado previo; todo dentro de una
// transacción para que cabecera, líneas y snapshot queden consistentes.
type BOMUseCase struct {
	txRunner    BOMTxRunner
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
	cycles      *bomcalc.CycleChecker
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(txRunner BOMTxRunner, bomRepo repository.BOMRepository, productRepo repository.ProductRepository) *BOMUseCase {
	return &BOMUseCase{
		txRunner:    txRunner,
		bomRepo:     bomRepo,
		productRepo: productRepo,
		cycles:      bomcalc.NewCycleChecker(bomRepo),
	}
}

// Create crea un BOM con sus materiales (versión 1, snapshot inicial).
// El producto debe ser terminado; cada material, materia prima. Un producto
// solo admite un BOM activo: crear otro no-template falla con ErrConflict.
func (uc *BOMUseCase) Create(ctx context.Context, userID string, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if in.BatchSize.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBOM
	}
	if len(in.Materials) == 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.Category != entity.CategoryFinishedGoods {
		return nil, domain.ErrInvalidProductCategory
	}

	if !in.IsTemplate {
		existing, err := uc.bomRepo.GetActiveByProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrConflict
		}
	}

	for _, m := range in.Materials {
		if err := uc.validateMaterial(ctx, m); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	status := entity.BOMStatusActive
	if in.IsTemplate {
		status = entity.BOMStatusDraft
	}
	bom := &entity.BOM{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		BatchSize:     in.BatchSize,
		Version:       1,
		Status:        status,
		IsTemplate:    in.IsTemplate,
		TemplateName:  in.TemplateName,
		EffectiveDate: now,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if err := bomRepo.Create(ctx, bom); err != nil {
			return err
		}
		for i, m := range in.Materials {
			line := materialToLine(bom.ID, m, i+1, now)
			if err := bomRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return uc.snapshotVersion(ctx, bomRepo, bom.ID, 1, userID, "Versión inicial")
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, bom.ID)
}

// GetByID devuelve el BOM con materiales enriquecidos (código y nombre del
// producto) y costos con scrap: costoLínea = cantidad * costoUnitario * (1 + scrap/100).
func (uc *BOMUseCase) GetByID(ctx context.Context, id string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}

	product, err := uc.productRepo.GetByID(ctx, bom.ProductID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.bomRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.BOMResponse{
		ID:            bom.ID,
		ProductID:     bom.ProductID,
		BatchSize:     bom.BatchSize,
		Version:       bom.Version,
		Status:        string(bom.Status),
		IsTemplate:    bom.IsTemplate,
		TemplateName:  bom.TemplateName,
		EffectiveDate: bom.EffectiveDate,
		Notes:         bom.Notes,
		Materials:     make([]dto.BOMMaterialResponse, 0, len(lines)),
		TotalBOMCost:  decimal.Zero,
		CreatedAt:     bom.CreatedAt,
		UpdatedAt:     bom.UpdatedAt,
	}
	if product != nil {
		resp.ProductCode = product.Code
		resp.ProductName = product.Name
	}

	for _, line := range lines {
		scrapFactor := decimal.New(1, 0).Add(line.ScrapPercentage.Div(hundred))
		totalCost := line.QuantityPerBatch.Mul(line.UnitCost).Mul(scrapFactor)
		resp.TotalBOMCost = resp.TotalBOMCost.Add(totalCost)

		mat := dto.BOMMaterialResponse{
			ID:               line.ID,
			BOMID:            line.BOMID,
			MaterialID:       line.MaterialID,
			Quantity:         line.QuantityPerBatch,
			Unit:             line.Unit,
			ScrapPercentage:  line.ScrapPercentage,
			UnitCost:         line.UnitCost,
			TotalCost:        totalCost,
			SequenceNumber:   line.SequenceNumber,
			IsSubAssembly:    line.IsSubAssembly,
			SubAssemblyBOMID: line.SubAssemblyBOMID,
		}
		if mp, err := uc.productRepo.GetByID(ctx, line.MaterialID); err == nil && mp != nil {
			mat.MaterialCode = mp.Code
			mat.MaterialName = mp.Name
		}
		resp.Materials = append(resp.Materials, mat)
	}
	return resp, nil
}

// GetActiveByProduct devuelve el BOM activo del producto.
func (uc *BOMUseCase) GetActiveByProduct(ctx context.Context, productID string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNoActiveBOM
	}
	return uc.GetByID(ctx, bom.ID)
}

// List devuelve resúmenes de BOM con conteo de materiales y costo total.
func (uc *BOMUseCase) List(ctx context.Context, productID string, onlyActive bool, limit, offset int) ([]dto.BOMListItem, error) {
	boms, err := uc.bomRepo.List(ctx, productID, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BOMListItem, 0, len(boms))
	for _, bom := range boms {
		product, err := uc.productRepo.GetByID(ctx, bom.ProductID)
		if err != nil || product == nil {
			continue
		}
		lines, err := uc.bomRepo.GetLines(ctx, bom.ID)
		if err != nil {
			return nil, err
		}
		totalCost := decimal.Zero
		for _, line := range lines {
			scrapFactor := decimal.New(1, 0).Add(line.ScrapPercentage.Div(hundred))
			totalCost = totalCost.Add(line.QuantityPerBatch.Mul(line.UnitCost).Mul(scrapFactor))
		}
		items = append(items, dto.BOMListItem{
			ID:             bom.ID,
			ProductID:      bom.ProductID,
			ProductCode:    product.Code,
			ProductName:    product.Name,
			Version:        bom.Version,
			BatchSize:      bom.BatchSize,
			Status:         string(bom.Status),
			IsTemplate:     bom.IsTemplate,
			MaterialsCount: len(lines),
			TotalCost:      totalCost,
			EffectiveDate:  bom.EffectiveDate,
			CreatedAt:      bom.CreatedAt,
		})
	}
	return items, nil
}

// Update actualiza cabecera y/o reemplaza las líneas. Sobre un BOM activo la
// mutación estructural incrementa versión y guarda snapshot del estado previo,
// todo en una transacción.
func (uc *BOMUseCase) Update(ctx context.Context, bomID, userID string, in dto.UpdateBOMRequest) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if in.BatchSize != nil && in.BatchSize.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBOM
	}
	for _, m := range in.Materials {
		if err := uc.validateMaterial(ctx, m); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if bom.IsActive() {
			if err := uc.snapshotVersion(ctx, bomRepo, bom.ID, bom.Version, userID, "Estado previo a actualización"); err != nil {
				return err
			}
			bom.Version++
		}
		if in.BatchSize != nil {
			bom.BatchSize = *in.BatchSize
		}
		if in.Notes != nil {
			bom.Notes = *in.Notes
		}
		bom.UpdatedAt = now
		if err := bomRepo.Update(ctx, bom); err != nil {
			return err
		}
		if in.Materials != nil {
			if err := bomRepo.DeleteLines(ctx, bom.ID); err != nil {
				return err
			}
			for i, m := range in.Materials {
				if err := bomRepo.CreateLine(ctx, materialToLine(bom.ID, m, i+1, now)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, bomID)
}

// Activate pasa el BOM a Active y supersede a todos sus hermanos del mismo
// producto en una sola transacción, preservando el invariante de un activo
// por producto.
func (uc *BOMUseCase) Activate(ctx context.Context, bomID string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if err := bomRepo.SupersedeSiblings(ctx, bom.ProductID, bom.ID); err != nil {
			return err
		}
		return bomRepo.SetStatus(ctx, bom.ID, entity.BOMStatusActive)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, bomID)
}

// Deactivate retira el BOM de servicio (baja lógica, nunca borrado físico).
func (uc *BOMUseCase) Deactivate(ctx context.Context, bomID string) error {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return err
	}
	if bom == nil {
		return domain.ErrNotFound
	}
	return uc.bomRepo.SetStatus(ctx, bomID, entity.BOMStatusSuperseded)
}

// AddMaterial agrega una línea de materia prima a un BOM existente.
func (uc *BOMUseCase) AddMaterial(ctx context.Context, bomID, userID string, in dto.BOMMaterialRequest) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validateMaterial(ctx, in); err != nil {
		return nil, err
	}

	lines, err := uc.bomRepo.GetLines(ctx, bomID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.MaterialID == in.MaterialID {
			return nil, domain.ErrDuplicate
		}
	}
	seq := in.SequenceNumber
	if seq == 0 {
		seq = nextSequence(lines)
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if bom.IsActive() {
			if err := uc.snapshotVersion(ctx, bomRepo, bom.ID, bom.Version, userID, "Estado previo a agregar material"); err != nil {
				return err
			}
			bom.Version++
			bom.UpdatedAt = now
			if err := bomRepo.Update(ctx, bom); err != nil {
				return err
			}
		}
		line := materialToLine(bomID, in, seq, now)
		return bomRepo.CreateLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, bomID)
}

// RemoveMaterial elimina una línea del BOM (con versionado si está activo).
func (uc *BOMUseCase) RemoveMaterial(ctx context.Context, bomID, lineID, userID string) error {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return err
	}
	if bom == nil {
		return domain.ErrNotFound
	}
	lines, err := uc.bomRepo.GetLines(ctx, bomID)
	if err != nil {
		return err
	}
	found := false
	for _, l := range lines {
		if l.ID == lineID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound
	}

	return uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if bom.IsActive() {
			if err := uc.snapshotVersion(ctx, bomRepo, bom.ID, bom.Version, userID, "Estado previo a remover material"); err != nil {
				return err
			}
			bom.Version++
			bom.UpdatedAt = time.Now()
			if err := bomRepo.Update(ctx, bom); err != nil {
				return err
			}
		}
		return bomRepo.DeleteLine(ctx, lineID)
	})
}

// LinkSubAssembly enlaza otro BOM como sub-ensamble de este. El producto
// sub-ensamble debe tener BOM activo y el enlace no puede cerrar un ciclo:
// la verificación BFS corre antes de cualquier escritura, así un rechazo por
// ErrCircularBOM no deja mutación alguna.
func (uc *BOMUseCase) LinkSubAssembly(ctx context.Context, bomID, userID string, in dto.LinkSubAssemblyRequest) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidBOM
	}

	subProduct, err := uc.productRepo.GetByID(ctx, in.SubAssemblyProductID)
	if err != nil {
		return nil, err
	}
	if subProduct == nil {
		return nil, domain.ErrProductNotFound
	}
	if subProduct.Category != entity.CategoryFinishedGoods {
		return nil, domain.ErrInvalidProductCategory
	}

	subBOM, err := uc.bomRepo.GetActiveByProduct(ctx, in.SubAssemblyProductID)
	if err != nil {
		return nil, err
	}
	if subBOM == nil {
		return nil, domain.ErrNoActiveBOM
	}

	cyclic, err := uc.cycles.WouldCycle(ctx, bomID, subBOM.ID)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, domain.ErrCircularBOM
	}

	lines, err := uc.bomRepo.GetLines(ctx, bomID)
	if err != nil {
		return nil, err
	}
	seq := in.SequenceNumber
	if seq == 0 {
		seq = nextSequence(lines)
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(bomRepo repository.BOMRepository, _ repository.ProductRepository) error {
		if bom.IsActive() {
			if err := uc.snapshotVersion(ctx, bomRepo, bom.ID, bom.Version, userID, "Estado previo a enlazar sub-ensamble"); err != nil {
				return err
			}
			bom.Version++
			bom.UpdatedAt = now
			if err := bomRepo.Update(ctx, bom); err != nil {
				return err
			}
		}
		return bomRepo.CreateLine(ctx, &entity.BOMLine{
			ID:               uuid.New().String(),
			BOMID:            bomID,
			MaterialID:       in.SubAssemblyProductID,
			QuantityPerBatch: in.Quantity,
			Unit:             in.Unit,
			ScrapPercentage:  in.ScrapPercentage,
			SequenceNumber:   seq,
			IsSubAssembly:    true,
			SubAssemblyBOMID: subBOM.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, bomID)
}

// Versions devuelve el historial de snapshots del BOM.
func (uc *BOMUseCase) Versions(ctx context.Context, bomID string) ([]dto.BOMVersionResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	versions, err := uc.bomRepo.ListVersions(ctx, bomID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMVersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.BOMVersionResponse{
			ID:            v.ID,
			BOMID:         v.BOMID,
			Version:       v.Version,
			EffectiveDate: v.EffectiveDate,
			Notes:         v.Notes,
			CreatedBy:     v.CreatedBy,
			CreatedAt:     v.CreatedAt,
		})
	}
	return out, nil
}

// validateMaterial valida existencia, categoría y rangos numéricos de una línea.
func (uc *BOMUseCase) validateMaterial(ctx context.Context, m dto.BOMMaterialRequest) error {
	if m.Quantity.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidBOM
	}
	if m.ScrapPercentage.IsNegative() || m.ScrapPercentage.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	if m.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	material, err := uc.productRepo.GetByID(ctx, m.MaterialID)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrProductNotFound
	}
	if material.Category != entity.CategoryRawMaterial {
		return domain.ErrInvalidProductCategory
	}
	return nil
}

// bomSnapshot forma serializada del estado de un BOM para el historial.
type bomSnapshot struct {
	BOM   *entity.BOM       `json:"bom"`
	Lines []*entity.BOMLine `json:"lines"`
}

// snapshotVersion serializa cabecera + líneas actuales y las guarda como
// registro de versión inmutable.
func (uc *BOMUseCase) snapshotVersion(ctx context.Context, bomRepo repository.BOMRepository, bomID string, version int, userID, notes string) error {
	bom, err := bomRepo.GetByID(ctx, bomID)
	if err != nil {
		return err
	}
	lines, err := bomRepo.GetLines(ctx, bomID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(bomSnapshot{BOM: bom, Lines: lines})
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	return bomRepo.CreateVersion(ctx, &entity.BOMVersion{
		ID:            uuid.New().String(),
		BOMID:         bomID,
		Version:       version,
		EffectiveDate: time.Now(),
		Notes:         notes,
		Snapshot:      raw,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	})
}

func materialToLine(bomID string, m dto.BOMMaterialRequest, seq int, now time.Time) *entity.BOMLine {
	if m.SequenceNumber != 0 {
		seq = m.SequenceNumber
	}
	return &entity.BOMLine{
		ID:               uuid.New().String(),
		BOMID:            bomID,
		MaterialID:       m.MaterialID,
		QuantityPerBatch: m.Quantity,
		Unit:             m.Unit,
		ScrapPercentage:  m.ScrapPercentage,
		UnitCost:         m.UnitCost,
		SequenceNumber:   seq,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func nextSequence(lines []*entity.BOMLine) int {
	max := 0
	for _, l := range lines {
		if l.SequenceNumber > max {
			max = l.SequenceNumber
		}
	}
	return max + 1
}
