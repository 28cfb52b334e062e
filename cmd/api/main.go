package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	shutdownTracing := telemetry.Setup(cfg.App.Name, cfg.OTel.Enabled, log)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar trazas")
		}
	}()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché del tablero: opcional, sin Redis el resumen se calcula en cada petición.
	var dashboardCache *cache.DashboardCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, tablero sin caché")
		} else {
			defer client.Close()
			dashboardCache = cache.NewDashboardCache(client, cfg.Dashboard.CacheTTL)
		}
	}

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerOpts := []ledger.Option{ledger.WithLogger(log)}
	catalogOpts := []usecase.Option{usecase.WithLogger(log)}
	if dashboardCache != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithInvalidator(dashboardCache))
		catalogOpts = append(catalogOpts, usecase.WithInvalidator(dashboardCache))
	}
	ledgerUC := ledger.NewUseCase(txRunner, inventoryRepo, transactionRepo, ledgerOpts...)

	var dashCache appanalytics.Cache
	if dashboardCache != nil {
		dashCache = dashboardCache
	}
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, ledgerUC, dashCache, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo, nil, catalogOpts...),
		LocationUC:  usecase.NewLocationUseCase(locationRepo, warehouseRepo, nil, catalogOpts...),
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo, nil),
		ProductUC:   usecase.NewProductUseCase(productRepo, categoryRepo, nil, catalogOpts...),
		PersonUC:    usecase.NewPersonUseCase(personRepo, nil, catalogOpts...),
		UserUC:      usecase.NewUserUseCase(userRepo, nil),
		AuthUC:      authUC,
		Ledger:      ledgerUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
