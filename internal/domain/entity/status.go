package entity

// Estados de stock derivados de Quantity vs MinStock/MaxStock.
const (
	StatusOK        = "OK"
	StatusLowStock  = "Low Stock"
	StatusOverstock = "Overstock"
)

// ClassifyStatus clasifica el estado actual de un repuesto.
// Función pura sobre los campos actuales; no consulta el historial.
// MaxStock en 0 significa sin techo: nunca dispara Overstock.
func ClassifyStatus(p *Part) string {
	if p.Quantity <= p.MinStock {
		return StatusLowStock
	}
	if p.MaxStock > 0 && p.Quantity > p.MaxStock {
		return StatusOverstock
	}
	return StatusOK
}

// ReorderQuantity calcula cuánto pedir cuando el repuesto está en Low Stock:
// llenar hasta MaxStock (o hasta la cantidad actual si no hay techo), nunca negativo.
func ReorderQuantity(p *Part) int {
	if ClassifyStatus(p) != StatusLowStock {
		return 0
	}
	target := p.MaxStock
	if target == 0 {
		target = p.Quantity
	}
	if n := target - p.Quantity; n > 0 {
		return n
	}
	return 0
}
