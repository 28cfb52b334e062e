package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	PersonUC    *usecase.PersonUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	Ledger      *ledger.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	Log         *logger.Logger // nil descarta los logs de error
}

// resourceHandler handler CRUD con borrado lógico.
type resourceHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Deactivate(c *fiber.Ctx) error
	Activate(c *fiber.Ctx) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(LocalLogger, log)
		return c.Next()
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	authenticated := AuthMiddleware(deps.JWTSecret)
	canRead := RequirePermission(policy.OpRead)
	canWrite := RequirePermission(policy.OpWrite)
	canManageUsers := RequirePermission(policy.OpManageUsers)

	// Auth (público; register lee el rol del token si viene)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo
	resource(api.Group("/warehouses", authenticated), NewWarehouseHandler(deps.WarehouseUC), canRead, canWrite)
	resource(api.Group("/locations", authenticated), NewLocationHandler(deps.LocationUC), canRead, canWrite)
	resource(api.Group("/categories", authenticated), NewCategoryHandler(deps.CategoryUC), canRead, canWrite)
	resource(api.Group("/products", authenticated), NewProductHandler(deps.ProductUC), canRead, canWrite)
	resource(api.Group("/persons", authenticated), NewPersonHandler(deps.PersonUC), canRead, canWrite)

	// Usuarios (solo admin)
	resource(api.Group("/users", authenticated), NewUserHandler(deps.UserUC), canManageUsers, canManageUsers)

	// Inventarios: la cantidad se deriva, no se edita
	inventories := api.Group("/inventories", authenticated)
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inventories.Get("/", canRead, inventoryHandler.List)
	inventories.Get("/:id", canRead, inventoryHandler.GetByID)
	inventories.Delete("/:id", canWrite, inventoryHandler.Deactivate)
	inventories.Post("/:id/activate", canWrite, inventoryHandler.Activate)

	// Transacciones: inmutables, solo cambia su estado activo
	transactions := api.Group("/transactions", authenticated)
	transactionHandler := NewTransactionHandler(deps.Ledger)
	transactions.Get("/", canRead, transactionHandler.List)
	transactions.Post("/", canWrite, transactionHandler.Create)
	transactions.Get("/:id", canRead, transactionHandler.GetByID)
	transactions.Delete("/:id", canWrite, transactionHandler.Deactivate)
	transactions.Post("/:id/activate", canWrite, transactionHandler.Activate)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", authenticated, canRead, dashboardHandler.GetSummary)
}

func resource(r fiber.Router, h resourceHandler, read, write fiber.Handler) {
	r.Get("/", read, h.List)
	r.Post("/", write, h.Create)
	r.Get("/:id", read, h.GetByID)
	r.Put("/:id", write, h.Update)
	r.Delete("/:id", write, h.Deactivate)
	r.Post("/:id/activate", write, h.Activate)
}
