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

	"github.com/jhoicas/partkeep-api/internal/application/catalog"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
	"github.com/jhoicas/partkeep-api/internal/domain/repository"
	"github.com/jhoicas/partkeep-api/internal/infrastructure/memory"
	"github.com/jhoicas/partkeep-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/partkeep-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/partkeep-api/internal/interfaces/http"
	"github.com/jhoicas/partkeep-api/pkg/config"
	"github.com/jhoicas/partkeep-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var partRepo repository.PartRepository
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		partRepo = postgres.NewPartRepository(pool)
	case config.StoreMongo:
		repo, err := mongodb.NewPartRepository(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		partRepo = repo
	default:
		partRepo = memory.NewPartRepository()
	}

	index := catalog.NewIndex()
	stockLedger := ledger.NewLedger(partRepo)
	stockLedger.SetChangeHook(index.Rebuild)
	if err := stockLedger.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("hidratar catálogo")
	}
	if cfg.Store.Seed {
		created, err := stockLedger.SeedIfEmpty(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar catálogo")
		}
		if created > 0 {
			log.Info().Int("parts", created).Msg("catálogo sembrado")
		}
	}
	log.Info().Int("parts", len(stockLedger.Snapshot())).Msg("catálogo hidratado")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Log de acceso con el logger estructurado
	app.Use(func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(started)).
			Msg("request")
		return err
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PartKeep API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:  stockLedger,
		Catalog: index,
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
