package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/partkeep-api/internal/application/catalog"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
	"github.com/jhoicas/partkeep-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger  *ledger.Ledger
	Catalog *catalog.Index
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Parts: catálogo y atributos
	parts := api.Group("/parts")
	partHandler := NewPartHandler(deps.Ledger, deps.Catalog)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)

	// Stock: movimientos, conteo físico, historial
	stockHandler := NewStockHandler(deps.Ledger)
	parts.Post("/:id/movements", stockHandler.RegisterMovement)
	parts.Post("/:id/opname", stockHandler.StockOpname)
	parts.Get("/:id/history", stockHandler.History)

	// Reportes y facetas
	reportHandler := NewReportHandler(deps.Ledger, deps.Catalog)
	api.Get("/reports/movements", reportHandler.Movements)
	api.Get("/catalog/facets", reportHandler.Facets)

	// Importación y exportaciones
	ioHandler := NewImportExportHandler(deps.Ledger)
	api.Post("/imports/parts", ioHandler.ImportParts)
	api.Get("/exports/parts", ioHandler.ExportParts)
	api.Get("/exports/status", ioHandler.ExportStatus)
	api.Get("/exports/report", ioHandler.ExportReport)
	api.Get("/exports/history", ioHandler.ExportHistory)
}

// respondError mapea errores de dominio a códigos HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
