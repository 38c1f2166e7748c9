package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/partkeep-api/internal/application/catalog"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
)

// PartHandler maneja las peticiones HTTP de catálogo y atributos de repuestos.
type PartHandler struct {
	ledger *ledger.Ledger
	index  *catalog.Index
}

// NewPartHandler construye el handler.
func NewPartHandler(l *ledger.Ledger, ix *catalog.Index) *PartHandler {
	return &PartHandler{ledger: l, index: ix}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Datos del repuesto"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.ledger.CreatePart(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPartResponse(part, false))
}

// List godoc
// @Summary      Listar repuestos con búsqueda y filtros de faceta
// @Tags         parts
// @Produce      json
// @Param        q         query  string  false  "Búsqueda por nombre, número de parte o descripción"
// @Param        supplier  query  string  false  "Proveedor (all = todos)"
// @Param        location  query  string  false  "Ubicación (all = todas)"
// @Param        category  query  string  false  "Categoría (all = todas)"
// @Success      200  {object}  dto.PartListResponse
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	filter := catalog.Filter{
		Query:    c.Query("q"),
		Supplier: c.Query("supplier"),
		Location: c.Query("location"),
		Category: c.Query("category"),
	}
	matches := h.index.Search(filter)
	items := make([]dto.PartResponse, 0, len(matches))
	for _, p := range matches {
		items = append(items, *dto.ToPartResponse(p, false))
	}
	return c.JSON(dto.PartListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener repuesto por ID (con historial)
// @Tags         parts
// @Produce      json
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	part := h.ledger.Get(c.Params("id"))
	if part == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "repuesto no encontrado"})
	}
	return c.JSON(dto.ToPartResponse(part, true))
}

// Update godoc
// @Summary      Actualizar atributos de un repuesto
// @Description  Quantity y el historial no se tocan por esta vía: solo cambian con movimientos.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del repuesto"
// @Param        body  body  dto.UpdatePartRequest  true  "Atributos a actualizar"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.ledger.UpdateAttributes(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPartResponse(part, false))
}
