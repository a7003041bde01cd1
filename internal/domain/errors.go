package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son terminales:
// el caller debe corregir la petición antes de reintentar; los fallos de
// infraestructura se propagan envueltos desde los adaptadores.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del motor de BOM / cálculo de faltantes.
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInvalidProductCategory = errors.New("categoría de producto inválida para la operación")
	ErrNoActiveBOM            = errors.New("no existe BOM activo para el producto")
	ErrInvalidBOM             = errors.New("BOM inválido: cantidad o tamaño de lote no positivo")
	ErrCircularBOM            = errors.New("referencia circular detectada en sub-ensamble")
	ErrBOMTooDeep             = errors.New("jerarquía de BOM excede la profundidad máxima")
)
