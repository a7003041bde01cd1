package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/manufactura-api/internal/application/bomcalc"
	"github.com/tu-usuario/manufactura-api/internal/application/dto"
	"github.com/tu-usuario/manufactura-api/internal/application/usecase"
)

// BOMHandler maneja BOMs, cálculo de faltantes y explosión multi-nivel (protegido).
type BOMHandler struct {
	uc       *usecase.BOMUseCase
	shortage *bomcalc.ShortageCalculator
	exploder *bomcalc.Exploder
	pdfGen   bomcalc.ReportPDFGenerator
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase, shortage *bomcalc.ShortageCalculator, exploder *bomcalc.Exploder, pdfGen bomcalc.ReportPDFGenerator) *BOMHandler {
	return &BOMHandler{uc: uc, shortage: shortage, exploder: exploder, pdfGen: pdfGen}
}

// Create godoc
// @Summary      Crear BOM con materiales
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "BOM y materiales"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener BOM con materiales y costos
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del BOM"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetActiveByProduct godoc
// @Summary      BOM activo de un producto
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/bom [get]
func (h *BOMHandler) GetActiveByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetActiveByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar BOMs
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  false  "ID del producto"
// @Param        active   query  bool    false  "Solo activos"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {array}  dto.BOMListItem
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}
	out, err := h.uc.List(c.UserContext(), c.Query("product"), c.QueryBool("active", false), limit, c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar BOM (versiona si está activo)
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del BOM"
// @Param        body  body  dto.UpdateBOMRequest  true  "Cambios"
// @Success      200   {object}  dto.BOMResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar BOM (supersede a los hermanos)
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del BOM"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/activate [post]
func (h *BOMHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Retirar BOM de servicio (baja lógica)
// @Tags         boms
// @Security     Bearer
// @Param        id  path  string  true  "ID del BOM"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMaterial godoc
// @Summary      Agregar material al BOM
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del BOM"
// @Param        body  body  dto.BOMMaterialRequest  true  "Material"
// @Success      200   {object}  dto.BOMResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/materials [post]
func (h *BOMHandler) AddMaterial(c *fiber.Ctx) error {
	var in dto.BOMMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddMaterial(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveMaterial godoc
// @Summary      Remover material del BOM
// @Tags         boms
// @Security     Bearer
// @Param        id      path  string  true  "ID del BOM"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/materials/{lineId} [delete]
func (h *BOMHandler) RemoveMaterial(c *fiber.Ctx) error {
	if err := h.uc.RemoveMaterial(c.UserContext(), c.Params("id"), c.Params("lineId"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LinkSubAssembly godoc
// @Summary      Enlazar sub-ensamble al BOM (valida ciclos)
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del BOM padre"
// @Param        body  body  dto.LinkSubAssemblyRequest  true  "Sub-ensamble"
// @Success      200   {object}  dto.BOMResponse
// @Failure      409   {object}  dto.ErrorResponse  "referencia circular"
// @Router       /api/boms/{id}/sub-assemblies [post]
func (h *BOMHandler) LinkSubAssembly(c *fiber.Ctx) error {
	var in dto.LinkSubAssemblyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.LinkSubAssembly(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Versions godoc
// @Summary      Historial de versiones del BOM
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del BOM"
// @Success      200  {array}  dto.BOMVersionResponse
// @Router       /api/boms/{id}/versions [get]
func (h *BOMHandler) Versions(c *fiber.Ctx) error {
	out, err := h.uc.Versions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CalculateShortages godoc
// @Summary      Calcular faltantes de materiales para una producción
// @Tags         calculations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShortageCalculationRequest  true  "Producto y cantidad"
// @Success      200   {object}  bomcalc.ShortageReport
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boms/shortages [post]
func (h *BOMHandler) CalculateShortages(c *fiber.Ctx) error {
	var in dto.ShortageCalculationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	report, err := h.shortage.Calculate(c.UserContext(), bomcalc.ShortageInput{
		ProductID:        in.ProductID,
		ProductionQty:    in.ProductionQty,
		TargetLocationID: in.TargetLocationID,
		IncludeAllocated: in.IncludeAllocated,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ShortagesPDF godoc
// @Summary      Reporte de faltantes en PDF
// @Tags         calculations
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ShortageCalculationRequest  true  "Producto y cantidad"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/boms/shortages/pdf [post]
func (h *BOMHandler) ShortagesPDF(c *fiber.Ctx) error {
	var in dto.ShortageCalculationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	report, err := h.shortage.Calculate(c.UserContext(), bomcalc.ShortageInput{
		ProductID:        in.ProductID,
		ProductionQty:    in.ProductionQty,
		TargetLocationID: in.TargetLocationID,
		IncludeAllocated: in.IncludeAllocated,
	})
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.pdfGen.GenerateShortagePDF(c.UserContext(), report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="faltantes-`+report.ProductCode+`.pdf"`)
	return c.Send(pdfBytes)
}

// Explosion godoc
// @Summary      Explosión multi-nivel del BOM (materiales consolidados)
// @Tags         calculations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del BOM"
// @Success      200  {array}  bomcalc.ExplodedLine
// @Failure      400  {object}  dto.ErrorResponse  "jerarquía demasiado profunda"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/explosion [get]
func (h *BOMHandler) Explosion(c *fiber.Ctx) error {
	out, err := h.exploder.Explode(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
