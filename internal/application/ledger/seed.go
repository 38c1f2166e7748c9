package ledger

import (
	"context"

	"github.com/jhoicas/partkeep-api/internal/application/dto"
)

// seedParts catálogo de arranque para un almacén vacío.
var seedParts = []dto.CreatePartRequest{
	{Name: "Rodamiento 6204-2RS", PartNumber: "BRG-6204", Description: "Rodamiento rígido de bolas, sellado", Category: "Rodamientos", Supplier: "SKF", Location: "A1-03", Quantity: 40, MinStock: 10, MaxStock: 60},
	{Name: "Correa trapezoidal B-52", PartNumber: "BLT-B52", Description: "Correa de transmisión perfil B", Category: "Transmisión", Supplier: "Gates", Location: "B2-01", Quantity: 12, MinStock: 6, MaxStock: 24},
	{Name: "Filtro hidráulico HF-6510", PartNumber: "FLT-6510", Description: "", Category: "Filtros", Supplier: "Fleetguard", Location: "C1-07", Quantity: 8, MinStock: 4, MaxStock: 0},
	{Name: "Contactor LC1D18", PartNumber: "ELC-LC1D18", Description: "Contactor tripolar 18A bobina 220V", Category: "Eléctrico", Supplier: "Schneider", Location: "D3-02", Quantity: 5, MinStock: 2, MaxStock: 10},
}

// SeedIfEmpty crea el catálogo de arranque si el almacén está vacío.
// Equivalente al sembrado inicial de la base en el primer arranque.
func (l *Ledger) SeedIfEmpty(ctx context.Context) (int, error) {
	if len(l.Snapshot()) > 0 {
		return 0, nil
	}
	created := 0
	for _, in := range seedParts {
		if _, err := l.CreatePart(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
