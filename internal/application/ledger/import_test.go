package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/domain"
)

func TestImportParts_FilasInvalidasSeSaltan(t *testing.T) {
	l, _ := newTestLedger(t)

	records := []dto.ImportRecord{
		{Name: "Filtro de aire", PartNumber: "FLT-01", Category: "Filtros", Supplier: "Mann", Location: "C1", Quantity: "12", MinStock: "4", MaxStock: "20"},
		{Name: "", PartNumber: "FLT-02", Category: "Filtros", Supplier: "Mann", Location: "C1"}, // sin nombre
		{Name: "Filtro de aceite", PartNumber: "FLT-03", Supplier: "Mann", Location: "C1", Quantity: "no-numérico"},
	}
	result, err := l.ImportParts(context.Background(), records)
	require.NoError(t, err, "una fila inválida no aborta el lote")
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	parts := l.Snapshot()
	require.Len(t, parts, 2)
	for _, p := range parts {
		if p.PartNumber == "FLT-03" {
			assert.Zero(t, p.Quantity, "numérico no parseable se coerciona a 0")
			assert.Equal(t, "Uncategorized", p.Category, "categoría ausente toma el valor por defecto")
		}
	}
}

func TestImportParts_FalloDePersistenciaAbortaDistinto(t *testing.T) {
	l, repo := newTestLedger(t)
	repo.FailWith = domain.ErrPersistence

	records := []dto.ImportRecord{
		{Name: "A", PartNumber: "A-1", Category: "X", Supplier: "S", Location: "L"},
		{Name: "B", PartNumber: "B-1", Category: "X", Supplier: "S", Location: "L"},
	}
	result, err := l.ImportParts(context.Background(), records)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, result.Imported, "el resultado parcial acompaña al error")
}
