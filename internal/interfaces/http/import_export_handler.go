package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
	"github.com/jhoicas/partkeep-api/internal/application/report"
	"github.com/jhoicas/partkeep-api/internal/domain"
)

// ImportExportHandler maneja la importación por lotes y las exportaciones CSV.
// El núcleo solo produce tablas planas; acá se codifican como CSV de descarga.
type ImportExportHandler struct {
	ledger *ledger.Ledger
}

// NewImportExportHandler construye el handler.
func NewImportExportHandler(l *ledger.Ledger) *ImportExportHandler {
	return &ImportExportHandler{ledger: l}
}

// ImportParts godoc
// @Summary      Importar repuestos por lotes
// @Description  Las filas inválidas se saltan sin abortar el lote; solo un fallo
// @Description  de persistencia corta la importación.
// @Tags         io
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ImportRecord  true  "Filas a importar"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/imports/parts [post]
func (h *ImportExportHandler) ImportParts(c *fiber.Ctx) error {
	var records []dto.ImportRecord
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.ImportParts(c.Context(), records)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
		}
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ExportParts godoc
// @Summary      Exportar datos de repuestos como CSV
// @Tags         io
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/exports/parts [get]
func (h *ImportExportHandler) ExportParts(c *fiber.Ctx) error {
	table := report.PartTable(report.PartRows(h.ledger.Snapshot()))
	return sendCSV(c, "parts-export", table)
}

// ExportStatus godoc
// @Summary      Exportar reporte de estado (con cantidad a pedir) como CSV
// @Tags         io
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/exports/status [get]
func (h *ImportExportHandler) ExportStatus(c *fiber.Ctx) error {
	table := report.StatusTable(report.StatusRows(h.ledger.Snapshot()))
	return sendCSV(c, "part-status-export", table)
}

// ExportReport godoc
// @Summary      Exportar el reporte de movimientos por ventana como CSV
// @Description  Misma ventana inclusiva que /api/reports/movements.
// @Tags         io
// @Produce      text/csv
// @Param        start  query  string  true  "Inicio de la ventana"
// @Param        end    query  string  true  "Fin de la ventana"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/exports/report [get]
func (h *ImportExportHandler) ExportReport(c *fiber.Ctx) error {
	start, err := parseWindowTime(c.Query("start"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido o ausente"})
	}
	end, err := parseWindowTime(c.Query("end"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido o ausente"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la ventana termina antes de empezar"})
	}
	table := report.ReportTable(report.GenerateReport(h.ledger.Snapshot(), start, end))
	return sendCSV(c, "stock-report", table)
}

// ExportHistory godoc
// @Summary      Exportar el historial completo como CSV (fecha descendente)
// @Tags         io
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/exports/history [get]
func (h *ImportExportHandler) ExportHistory(c *fiber.Ctx) error {
	table := report.HistoryTable(report.HistoryRows(h.ledger.Snapshot()))
	return sendCSV(c, "all-stock-history-export", table)
}

// sendCSV codifica la tabla y la entrega como descarga con fecha en el nombre.
func sendCSV(c *fiber.Ctx, prefix string, table [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(table); err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("%s-%s.csv", prefix, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
