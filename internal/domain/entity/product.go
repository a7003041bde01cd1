package entity

import "time"

// ProductCategory categoría cerrada de producto: materia prima o producto terminado.
type ProductCategory string

const (
	CategoryRawMaterial   ProductCategory = "RAW_MATERIAL"
	CategoryFinishedGoods ProductCategory = "FINISHED_GOODS"
)

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c ProductCategory) Valid() bool {
	return c == CategoryRawMaterial || c == CategoryFinishedGoods
}

// Product representa un producto del catálogo (materia prima o producto terminado).
// La desactivación es un flag lógico: nunca se borra físicamente mientras esté
// referenciado por líneas de BOM o registros de inventario.
type Product struct {
	ID          string
	Code        string // código único
	Name        string
	Description string
	Category    ProductCategory
	Unit        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
