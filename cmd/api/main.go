package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bielsasys/pedidos-api/internal/application/analytics"
	"github.com/bielsasys/pedidos-api/internal/application/auth"
	"github.com/bielsasys/pedidos-api/internal/application/usecase"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
	"github.com/bielsasys/pedidos-api/internal/infrastructure/filestore"
	infrapdf "github.com/bielsasys/pedidos-api/internal/infrastructure/pdf"
	"github.com/bielsasys/pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/bielsasys/pedidos-api/internal/interfaces/http"
	"github.com/bielsasys/pedidos-api/pkg/config"
	"github.com/bielsasys/pedidos-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		productRepo repository.ProductRepository
		clientRepo  repository.ClientRepository
		orderRepo   repository.OrderRepository
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		productRepo = postgres.NewProductRepository(pool)
		clientRepo = postgres.NewClientRepository(pool)
		orderRepo = postgres.NewOrderRepository(pool)
	default:
		store, err := filestore.Open(cfg.Storage.File)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Storage.File).Msg("abrir snapshot")
		}
		productRepo = filestore.NewProductRepository(store)
		clientRepo = filestore.NewClientRepository(store)
		orderRepo = filestore.NewOrderRepository(store)
	}

	authUC := auth.NewAuthUseCase(clientRepo, auth.Config{
		JWTSecret:     cfg.JWT.Secret,
		JWTExpHours:   cfg.JWT.ExpHours,
		JWTIssuer:     cfg.JWT.Issuer,
		AdminUser:     cfg.Admin.User,
		AdminPassword: cfg.Admin.Password,
		AutoApprove:   cfg.Admin.AutoApprove,
		FailDelay:     600 * time.Millisecond,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	orderPDFUC := usecase.NewOrderPDFUseCase(orderRepo, pdfGenerator)
	dashboardUC := analytics.NewDashboardUseCase(orderRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		ClientUC:    clientUC,
		OrderUC:     orderUC,
		OrderPDFUC:  orderPDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
