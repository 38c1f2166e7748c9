package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// QuantityChange lleva el signo que pone el caller: positivo para "in",
// negativo para "out". Date es opcional; vacío = ahora.
type RegisterMovementRequest struct {
	QuantityChange int        `json:"quantityChange" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=in out adjustment"`
	Date           *time.Time `json:"date"`
}

// StockOpnameRequest entrada para un conteo físico.
type StockOpnameRequest struct {
	CountedQuantity int        `json:"countedQuantity" validate:"min=0"`
	Date            *time.Time `json:"date"`
}

// StockOpnameResponse resultado de un conteo físico. Applied en false indica
// que el conteo coincidió con el sistema y no se registró ajuste alguno.
type StockOpnameResponse struct {
	Applied bool          `json:"applied"`
	Part    *PartResponse `json:"part"`
}

// ImportRecord una fila de importación, con campos laxos tal como vienen
// del archivo: los numéricos llegan como texto y se coercionan con 0 por defecto.
type ImportRecord struct {
	Name        string `json:"name"`
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
	Quantity    string `json:"quantity"`
	MinStock    string `json:"minStock"`
	MaxStock    string `json:"maxStock"`
}

// ImportResultResponse resumen de una importación por lotes.
type ImportResultResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
