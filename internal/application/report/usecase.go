package report

import (
	"sort"
	"time"

	"github.com/jhoicas/partkeep-api/internal/domain/entity"
)

// ReportRow resumen de movimientos de un repuesto dentro de la ventana pedida.
// CurrentStock es la cantidad viva al momento de generar, no reconstruida al
// cierre de la ventana: un reporte de un período pasado muestra el stock de hoy.
type ReportRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PartNumber   string `json:"partNumber"`
	StockIn      int    `json:"stockIn"`
	StockOut     int    `json:"stockOut"`
	Adjustment   int    `json:"adjustment"`
	CurrentStock int    `json:"currentStock"`
}

// StatusRow fila del reporte de estado, con cantidad sugerida a pedir y el
// ajuste acumulado por conteos físicos sobre todo el historial.
type StatusRow struct {
	Name            string `json:"name"`
	PartNumber      string `json:"partNumber"`
	Category        string `json:"category"`
	Quantity        int    `json:"quantity"`
	Status          string `json:"status"`
	QuantityToOrder int    `json:"quantityToOrder"`
	TotalAdjustment int    `json:"totalAdjustment"`
}

// HistoryRow una entrada de historial aplanada para exportación.
type HistoryRow struct {
	Name           string    `json:"name"`
	PartNumber     string    `json:"partNumber"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantityChange"`
}

// PartRow atributos planos de un repuesto para exportación.
type PartRow struct {
	Name        string `json:"name"`
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	MinStock    int    `json:"minStock"`
	MaxStock    int    `json:"maxStock"`
}

// GenerateReport deriva el resumen de movimientos por repuesto para la ventana
// [start, end], ambos extremos inclusive. Reglas:
//   - stockIn: suma de deltas "in";
//   - stockOut: suma de valores absolutos de deltas "out";
//   - adjustment: suma firmada de deltas "adjustment";
//   - un repuesto sin actividad en la ventana se omite;
//   - el orden de salida es el orden de iteración de entrada.
func GenerateReport(parts []*entity.Part, start, end time.Time) []ReportRow {
	rows := make([]ReportRow, 0)
	for _, p := range parts {
		var stockIn, stockOut, adjustment int
		for _, log := range p.StockHistory {
			if log.Date.Before(start) || log.Date.After(end) {
				continue
			}
			switch log.Type {
			case entity.MovementTypeIn:
				stockIn += log.QuantityChange
			case entity.MovementTypeOut:
				if log.QuantityChange < 0 {
					stockOut -= log.QuantityChange
				} else {
					stockOut += log.QuantityChange
				}
			case entity.MovementTypeAdjust:
				adjustment += log.QuantityChange
			}
		}
		if stockIn == 0 && stockOut == 0 && adjustment == 0 {
			continue
		}
		rows = append(rows, ReportRow{
			ID:           p.ID,
			Name:         p.Name,
			PartNumber:   p.PartNumber,
			StockIn:      stockIn,
			StockOut:     stockOut,
			Adjustment:   adjustment,
			CurrentStock: p.Quantity,
		})
	}
	return rows
}

// StatusRows deriva el reporte de estado de todo el catálogo.
func StatusRows(parts []*entity.Part) []StatusRow {
	rows := make([]StatusRow, 0, len(parts))
	for _, p := range parts {
		var totalAdjustment int
		for _, log := range p.StockHistory {
			if log.Type == entity.MovementTypeAdjust {
				totalAdjustment += log.QuantityChange
			}
		}
		rows = append(rows, StatusRow{
			Name:            p.Name,
			PartNumber:      p.PartNumber,
			Category:        p.Category,
			Quantity:        p.Quantity,
			Status:          entity.ClassifyStatus(p),
			QuantityToOrder: entity.ReorderQuantity(p),
			TotalAdjustment: totalAdjustment,
		})
	}
	return rows
}

// HistoryRows aplana todo el historial del catálogo, ordenado por fecha
// descendente (entradas más recientes primero).
func HistoryRows(parts []*entity.Part) []HistoryRow {
	rows := make([]HistoryRow, 0)
	for _, p := range parts {
		for _, log := range p.StockHistory {
			rows = append(rows, HistoryRow{
				Name:           p.Name,
				PartNumber:     p.PartNumber,
				Date:           log.Date,
				Type:           log.Type,
				QuantityChange: log.QuantityChange,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}

// PartRows aplana los atributos del catálogo para la exportación de datos.
func PartRows(parts []*entity.Part) []PartRow {
	rows := make([]PartRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, PartRow{
			Name:        p.Name,
			PartNumber:  p.PartNumber,
			Description: p.Description,
			Category:    p.Category,
			Supplier:    p.Supplier,
			Location:    p.Location,
			Quantity:    p.Quantity,
			MinStock:    p.MinStock,
			MaxStock:    p.MaxStock,
		})
	}
	return rows
}
