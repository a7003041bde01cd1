package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/manufactura-api/internal/application/auth"
	"github.com/tu-usuario/manufactura-api/internal/application/bomcalc"
	"github.com/tu-usuario/manufactura-api/internal/application/usecase"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	BOMUC       *usecase.BOMUseCase
	Shortage    *bomcalc.ShortageCalculator
	Exploder    *bomcalc.Exploder
	PDFGen      bomcalc.ReportPDFGenerator
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	bomHandler := NewBOMHandler(deps.BOMUC, deps.Shortage, deps.Exploder, deps.PDFGen)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Get("/:id/bom", bomHandler.GetActiveByProduct)

	// Inventory y locations (protegido; escrituras restringidas por rol)
	canWriteStock := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Put("/", canWriteStock, inventoryHandler.Upsert)
	invGroup.Get("/products/:id", inventoryHandler.ListByProduct)

	locations := protected.Group("/locations")
	locations.Post("/", canWriteStock, inventoryHandler.CreateLocation)
	locations.Get("/", inventoryHandler.ListLocations)
	locations.Get("/:id/inventory", inventoryHandler.ListByLocation)

	// BOMs y cálculos (protegido). Las rutas fijas van antes que /:id.
	canEditBOM := RequireRole(entity.RoleAdmin, entity.RolePlanner)
	boms := protected.Group("/boms")
	boms.Post("/shortages", bomHandler.CalculateShortages)
	boms.Post("/shortages/pdf", bomHandler.ShortagesPDF)
	boms.Post("/", canEditBOM, bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Put("/:id", canEditBOM, bomHandler.Update)
	boms.Delete("/:id", canEditBOM, bomHandler.Deactivate)
	boms.Post("/:id/activate", canEditBOM, bomHandler.Activate)
	boms.Post("/:id/materials", canEditBOM, bomHandler.AddMaterial)
	boms.Delete("/:id/materials/:lineId", canEditBOM, bomHandler.RemoveMaterial)
	boms.Post("/:id/sub-assemblies", canEditBOM, bomHandler.LinkSubAssembly)
	boms.Get("/:id/versions", bomHandler.Versions)
	boms.Get("/:id/explosion", bomHandler.Explosion)
}
