package dto

import (
	"time"

	"github.com/jhoicas/partkeep-api/internal/domain/entity"
)

// CreatePartRequest entrada para crear un repuesto.
type CreatePartRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	PartNumber  string `json:"partNumber" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Supplier    string `json:"supplier" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	MinStock    int    `json:"minStock" validate:"min=0"`
	MaxStock    int    `json:"maxStock" validate:"min=0"`
}

// UpdatePartRequest entrada para actualizar atributos (sin Quantity ni historial:
// esos campos solo cambian vía movimientos).
type UpdatePartRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	PartNumber  *string `json:"partNumber" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Supplier    *string `json:"supplier"`
	Location    *string `json:"location"`
	MinStock    *int    `json:"minStock" validate:"omitempty,min=0"`
	MaxStock    *int    `json:"maxStock" validate:"omitempty,min=0"`
}

// StockLogResponse una entrada del historial.
type StockLogResponse struct {
	Date           time.Time `json:"date"`
	QuantityChange int       `json:"quantityChange"`
	Type           string    `json:"type"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	PartNumber  string             `json:"partNumber"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Supplier    string             `json:"supplier"`
	Location    string             `json:"location"`
	Quantity    int                `json:"quantity"`
	MinStock    int                `json:"minStock"`
	MaxStock    int                `json:"maxStock"`
	Status      string             `json:"status"`
	History     []StockLogResponse `json:"stockHistory,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PartListResponse lista de repuestos filtrada.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Total int            `json:"total"`
}

// ToPartResponse mapea la entidad a su representación HTTP.
// withHistory controla si se incluye el historial completo.
func ToPartResponse(p *entity.Part, withHistory bool) *PartResponse {
	if p == nil {
		return nil
	}
	out := &PartResponse{
		ID:          p.ID,
		Name:        p.Name,
		PartNumber:  p.PartNumber,
		Description: p.Description,
		Category:    p.Category,
		Supplier:    p.Supplier,
		Location:    p.Location,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		Status:      entity.ClassifyStatus(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withHistory {
		out.History = make([]StockLogResponse, 0, len(p.StockHistory))
		for _, log := range p.StockHistory {
			out.History = append(out.History, StockLogResponse{
				Date:           log.Date,
				QuantityChange: log.QuantityChange,
				Type:           log.Type,
			})
		}
	}
	return out
}
