package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	MovementUC     *inventory.MovementUseCase
	LowStockUC     *inventory.LowStockUseCase
	CSVUC          *catalog.CSVUseCase
	AuthUC         *auth.AuthUseCase
	Health         *HealthHandler
	MaxUploadBytes int64
	SecureCookie   bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie de sesión cuando la auth está habilitada)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	// CSV (antes de /products/:id para que "import" no se tome como id)
	csvHandler := NewCSVHandler(deps.CSVUC, deps.MaxUploadBytes)
	protected.Get("/products.csv", csvHandler.Export)
	protected.Post("/products/import", csvHandler.Import)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements
	movementHandler := NewMovementHandler(deps.MovementUC)
	products.Get("/:id/movements", movementHandler.List)
	products.Post("/:id/movements", movementHandler.Create)

	// Low stock
	lowStockHandler := NewLowStockHandler(deps.LowStockUC)
	protected.Get("/low-stock", lowStockHandler.List)
	protected.Get("/low-stock.pdf", lowStockHandler.PDF)
}
