package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn     = "in"         // entrada
	MovementTypeOut    = "out"        // salida
	MovementTypeAdjust = "adjustment" // ajuste por conteo físico (stock opname)
)

// ValidMovementType indica si el tipo de movimiento es uno de los conocidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut || t == MovementTypeAdjust
}

// StockLog es una entrada inmutable del historial de un repuesto.
// Convención de signo: entradas positivas para "in", negativas para "out";
// los ajustes llevan el delta firmado que reconcilia el conteo físico.
type StockLog struct {
	Date           time.Time
	QuantityChange int
	Type           string // in, out, adjustment
}

// Part representa un repuesto del inventario con su historial de movimientos.
// Invariante: Quantity == cantidad inicial + suma de QuantityChange del historial,
// en orden de aplicación. El historial es append-only y nunca se reescribe.
type Part struct {
	ID           string
	Name         string
	PartNumber   string
	Description  string
	Category     string
	Supplier     string
	Location     string
	Quantity     int // siempre >= 0
	MinStock     int
	MaxStock     int // 0 = sin techo de sobre-stock
	StockHistory []StockLog
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone devuelve una copia del repuesto con su propio slice de historial,
// para que las mutaciones trabajen sobre copias y el snapshot publicado
// permanezca inmutable.
func (p *Part) Clone() *Part {
	cp := *p
	cp.StockHistory = make([]StockLog, len(p.StockHistory))
	copy(cp.StockHistory, p.StockHistory)
	return &cp
}
