package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BOMStatus estado cerrado del BOM. Solo un BOM Active por producto;
// activar uno pasa los hermanos a Superseded.
type BOMStatus string

const (
	BOMStatusDraft      BOMStatus = "DRAFT"
	BOMStatusActive     BOMStatus = "ACTIVE"
	BOMStatusSuperseded BOMStatus = "SUPERSEDED"
)

// BOM cabecera de una lista de materiales versionada para un producto terminado.
// BatchSize es la cantidad de producto que rinde una receta completa (> 0).
type BOM struct {
	ID            string
	ProductID     string // debe referenciar un producto FINISHED_GOODS
	BatchSize     decimal.Decimal
	Version       int
	Status        BOMStatus
	IsTemplate    bool
	TemplateName  string
	EffectiveDate time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el BOM es el vigente para su producto.
func (b *BOM) IsActive() bool { return b.Status == BOMStatusActive }

// BOMLine línea de material de un BOM. Si IsSubAssembly es true, MaterialID
// referencia un producto terminado con BOM propio y SubAssemblyBOMID apunta a
// ese BOM activo; el grafo resultante debe ser acíclico (validado al crear el enlace).
type BOMLine struct {
	ID               string
	BOMID            string
	MaterialID       string
	QuantityPerBatch decimal.Decimal // > 0
	Unit             string
	ScrapPercentage  decimal.Decimal // [0, 100]
	UnitCost         decimal.Decimal // >= 0
	SequenceNumber   int
	IsSubAssembly    bool
	SubAssemblyBOMID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BOMVersion snapshot inmutable del estado pre-mutación de un BOM activo.
// Se crea en cada mutación estructural y nunca se modifica después.
type BOMVersion struct {
	ID            string
	BOMID         string
	Version       int
	EffectiveDate time.Time
	Notes         string
	Snapshot      json.RawMessage // cabecera + líneas serializadas
	CreatedBy     string
	CreatedAt     time.Time
}
