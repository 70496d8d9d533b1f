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

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
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
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.Close()

	productUC := usecase.NewProductUseCase(st.TxRunner, st.Products)
	movementUC := inventory.NewMovementUseCase(st.TxRunner, st.Products, st.Movements)
	lowStockUC := inventory.NewLowStockUseCase(st.Products, infrapdf.NewMarotoLowStockGenerator(cfg.App.Name))
	csvUC := catalog.NewCSVUseCase(st.TxRunner, st.Products)
	authUC := auth.NewAuthUseCase(auth.Config{
		AdminUser:         cfg.Auth.AdminUser,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	if !authUC.Enabled() {
		log.Warn().Msg("JWT_SECRET o ADMIN_PASSWORD_HASH vacíos: API sin autenticación")
	}

	maxUpload := int64(cfg.HTTP.MaxUploadMB) * 1024 * 1024
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(maxUpload) + 64*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		MovementUC:     movementUC,
		LowStockUC:     lowStockUC,
		CSVUC:          csvUC,
		AuthUC:         authUC,
		Health:         httpRouter.NewHealthHandler(cfg.App.Name, st.Driver, st.Ping),
		MaxUploadBytes: maxUpload,
		SecureCookie:   cfg.App.Env == "production",
	})

	// Página de administración estática (opcional)
	if info, err := os.Stat(cfg.HTTP.StaticDir); err == nil && info.IsDir() {
		app.Static("/", cfg.HTTP.StaticDir)
	}

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
