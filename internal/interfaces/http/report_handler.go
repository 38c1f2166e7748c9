package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/partkeep-api/internal/application/catalog"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
	"github.com/jhoicas/partkeep-api/internal/application/report"
)

// ReportHandler maneja reportes de movimientos y facetas de filtro.
type ReportHandler struct {
	ledger *ledger.Ledger
	index  *catalog.Index
}

// NewReportHandler construye el handler.
func NewReportHandler(l *ledger.Ledger, ix *catalog.Index) *ReportHandler {
	return &ReportHandler{ledger: l, index: ix}
}

// Movements godoc
// @Summary      Reporte de movimientos por ventana de fechas
// @Description  Ventana inclusiva en ambos extremos. Acepta RFC3339 o YYYY-MM-DD;
// @Description  una fecha sin hora en end cubre hasta el final de ese día.
// @Tags         reports
// @Produce      json
// @Param        start  query  string  true  "Inicio de la ventana"
// @Param        end    query  string  true  "Fin de la ventana"
// @Success      200  {array}  report.ReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
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
	rows := report.GenerateReport(h.ledger.Snapshot(), start, end)
	return c.JSON(rows)
}

// Facets godoc
// @Summary      Valores de filtro disponibles (proveedor, ubicación, categoría)
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.FacetsResponse
// @Router       /api/catalog/facets [get]
func (h *ReportHandler) Facets(c *fiber.Ctx) error {
	return c.JSON(dto.FacetsResponse{
		Suppliers:  h.index.Suppliers(),
		Locations:  h.index.Locations(),
		Categories: h.index.Categories(),
	})
}

// parseWindowTime acepta RFC3339 o fecha sin hora. Para el extremo final,
// una fecha sin hora se extiende al último instante de ese día.
func parseWindowTime(s string, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if isEnd {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
