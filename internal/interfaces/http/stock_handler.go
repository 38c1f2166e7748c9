package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
)

// StockHandler maneja movimientos de stock, conteos físicos e historial.
type StockHandler struct {
	ledger *ledger.Ledger
}

// NewStockHandler construye el handler.
func NewStockHandler(l *ledger.Ledger) *StockHandler {
	return &StockHandler{ledger: l}
}

// RegisterMovement godoc
// @Summary      Registrar un movimiento de stock (in/out/adjustment)
// @Description  El caller pone el signo del delta: positivo para in, negativo para out.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del repuesto"
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	part, err := h.ledger.ApplyMovement(c.Context(), c.Params("id"), in.QuantityChange, in.Type, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPartResponse(part, false))
}

// StockOpname godoc
// @Summary      Reconciliar un conteo físico
// @Description  Si el conteo coincide con el sistema responde applied=false sin registrar nada.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del repuesto"
// @Param        body  body  dto.StockOpnameRequest  true  "Conteo físico"
// @Success      200   {object}  dto.StockOpnameResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/opname [post]
func (h *StockHandler) StockOpname(c *fiber.Ctx) error {
	var in dto.StockOpnameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	part, applied, err := h.ledger.ApplyStockOpname(c.Context(), c.Params("id"), in.CountedQuantity, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockOpnameResponse{Applied: applied, Part: dto.ToPartResponse(part, false)})
}

// History godoc
// @Summary      Historial de movimientos de un repuesto
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	part := h.ledger.Get(c.Params("id"))
	if part == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
	}
	return c.JSON(dto.ToPartResponse(part, true))
}
