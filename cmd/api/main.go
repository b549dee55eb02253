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

	"github.com/jhoicas/Inventario-picking/internal/application/picking"
	domainpicking "github.com/jhoicas/Inventario-picking/internal/domain/picking"
	infrapdf "github.com/jhoicas/Inventario-picking/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-picking/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-picking/internal/interfaces/http"
	"github.com/jhoicas/Inventario-picking/pkg/config"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	fallback := domainpicking.UnitRates{
		Level1: cfg.Picking.FallbackLevel1Rate,
		Level2: cfg.Picking.FallbackLevel2Rate,
	}
	if fallback.Level1.IsZero() && fallback.Level2.IsZero() {
		log.Warn().Msg("sin tasas de respaldo: los niveles sin tasa no se contarán como disponibles")
	} else {
		log.Info().
			Str("level1", fallback.Level1.String()).
			Str("level2", fallback.Level2.String()).
			Msg("tasas de respaldo configuradas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockRepo := postgres.NewStockRecordRepository(pool)
	unitRepo := postgres.NewProductUnitRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	planUC := picking.NewPlanUseCase(stockRepo, unitRepo, infrapdf.NewRouteSheetGenerator(), fallback, log)
	confirmUC := picking.NewConfirmUseCase(txRunner, unitRepo, fallback, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Picking API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PlanUC:    planUC,
		ConfirmUC: confirmUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
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
