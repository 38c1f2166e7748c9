package ledger

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/domain"
)

// DefaultCategory se asigna a filas importadas sin categoría.
const DefaultCategory = "Uncategorized"

// ImportParts procesa un lote de filas laxamente tipadas: cada fila válida se
// convierte en un CreatePart; las filas malformadas se saltan sin abortar el
// lote. Solo un fallo de persistencia corta la importación, y se reporta
// distinto de los rechazos por validación: el resultado parcial acompaña al error.
func (l *Ledger) ImportParts(ctx context.Context, records []dto.ImportRecord) (dto.ImportResultResponse, error) {
	var result dto.ImportResultResponse
	for _, rec := range records {
		category := strings.TrimSpace(rec.Category)
		if category == "" {
			category = DefaultCategory
		}
		in := dto.CreatePartRequest{
			Name:        rec.Name,
			PartNumber:  rec.PartNumber,
			Description: rec.Description,
			Category:    category,
			Supplier:    rec.Supplier,
			Location:    rec.Location,
			Quantity:    coerceInt(rec.Quantity),
			MinStock:    coerceInt(rec.MinStock),
			MaxStock:    coerceInt(rec.MaxStock),
		}
		if _, err := l.CreatePart(ctx, in); err != nil {
			if errors.Is(err, domain.ErrPersistence) {
				return result, err
			}
			result.Skipped++
			continue
		}
		result.Imported++
	}
	return result, nil
}

// coerceInt convierte texto a entero con 0 por defecto si no parsea.
func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
