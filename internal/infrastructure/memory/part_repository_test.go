package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partkeep-api/internal/domain"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/infrastructure/memory"
)

func TestSaveAttributes_PreservaCantidadEHistorial(t *testing.T) {
	repo := memory.NewPartRepository()
	ctx := context.Background()

	part := &entity.Part{ID: "p1", Name: "Filtro", PartNumber: "FLT-1", Quantity: 10}
	require.NoError(t, repo.SaveNew(ctx, part))
	require.NoError(t, repo.SaveQuantityAndHistory(ctx, "p1", 7, []entity.StockLog{
		{Date: time.Now(), QuantityChange: -3, Type: entity.MovementTypeOut},
	}))

	// payload con cantidad vieja: el contrato de atributos debe ignorarla
	stale := &entity.Part{ID: "p1", Name: "Filtro de aire", PartNumber: "FLT-1", Quantity: 999}
	require.NoError(t, repo.SaveAttributes(ctx, stale))

	parts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Filtro de aire", parts[0].Name)
	assert.Equal(t, 7, parts[0].Quantity)
	assert.Len(t, parts[0].StockHistory, 1)
}

func TestLoadAll_DevuelveCopias(t *testing.T) {
	repo := memory.NewPartRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveNew(ctx, &entity.Part{ID: "p1", Name: "A"}))

	parts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	parts[0].Name = "mutado"

	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Name, "mutar lo devuelto no toca el almacén")
}

func TestEscrituras_DesconocidoEsNotFound(t *testing.T) {
	repo := memory.NewPartRepository()
	ctx := context.Background()

	err := repo.SaveAttributes(ctx, &entity.Part{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.SaveQuantityAndHistory(ctx, "nope", 1, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
