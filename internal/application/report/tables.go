package report

import "strconv"

// Constructores de tablas planas (encabezado + registros como texto) para
// entregar a cualquier codificador tabular externo (CSV, XLSX). El núcleo
// define la forma y el orden de las columnas; el formato de archivo no.

const historyDateLayout = "2006-01-02 15:04:05"

// PartTable tabla de exportación de datos de repuestos.
func PartTable(rows []PartRow) [][]string {
	table := [][]string{{"name", "partNumber", "description", "category", "supplier", "location", "quantity", "minStock", "maxStock"}}
	for _, r := range rows {
		table = append(table, []string{
			r.Name, r.PartNumber, r.Description, r.Category, r.Supplier, r.Location,
			strconv.Itoa(r.Quantity), strconv.Itoa(r.MinStock), strconv.Itoa(r.MaxStock),
		})
	}
	return table
}

// StatusTable tabla de exportación del reporte de estado.
func StatusTable(rows []StatusRow) [][]string {
	table := [][]string{{"Part Name", "Part Number", "Category", "Current Quantity", "Status", "Quantity to Order", "Total Stock Opname Adjustment"}}
	for _, r := range rows {
		table = append(table, []string{
			r.Name, r.PartNumber, r.Category,
			strconv.Itoa(r.Quantity), r.Status,
			strconv.Itoa(r.QuantityToOrder), strconv.Itoa(r.TotalAdjustment),
		})
	}
	return table
}

// HistoryTable tabla de exportación del historial completo.
func HistoryTable(rows []HistoryRow) [][]string {
	table := [][]string{{"Part Name", "Part Number", "Date", "Type", "Quantity Change"}}
	for _, r := range rows {
		table = append(table, []string{
			r.Name, r.PartNumber, r.Date.Format(historyDateLayout), r.Type, strconv.Itoa(r.QuantityChange),
		})
	}
	return table
}

// ReportTable tabla de exportación del reporte de movimientos por ventana.
func ReportTable(rows []ReportRow) [][]string {
	table := [][]string{{"Part Name", "Part Number", "Stock In", "Stock Out", "Adjustment", "Current Stock"}}
	for _, r := range rows {
		table = append(table, []string{
			r.Name, r.PartNumber,
			strconv.Itoa(r.StockIn), strconv.Itoa(r.StockOut),
			strconv.Itoa(r.Adjustment), strconv.Itoa(r.CurrentStock),
		})
	}
	return table
}
