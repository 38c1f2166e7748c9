package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/partkeep-api/internal/domain/entity"
)

func TestClassifyStatus_Fronteras(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		minStock int
		maxStock int
		want     string
	}{
		{"cantidad igual al mínimo es Low Stock", 5, 5, 20, entity.StatusLowStock},
		{"cantidad bajo el mínimo es Low Stock", 3, 5, 20, entity.StatusLowStock},
		{"cantidad en cero con mínimo cero es Low Stock", 0, 0, 20, entity.StatusLowStock},
		{"cantidad igual al máximo no es Overstock", 20, 5, 20, entity.StatusOK},
		{"cantidad sobre el máximo es Overstock", 21, 5, 20, entity.StatusOverstock},
		{"sin techo nunca hay Overstock", 9999, 5, 0, entity.StatusOK},
		{"rango normal es OK", 10, 5, 20, entity.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &entity.Part{Quantity: tc.quantity, MinStock: tc.minStock, MaxStock: tc.maxStock}
			assert.Equal(t, tc.want, entity.ClassifyStatus(p))
		})
	}
}

func TestReorderQuantity(t *testing.T) {
	// Low Stock con techo: pedir hasta llenar el máximo
	p := &entity.Part{Quantity: 2, MinStock: 5, MaxStock: 20}
	assert.Equal(t, 18, entity.ReorderQuantity(p))

	// Low Stock sin techo: el objetivo es la cantidad actual, nada que pedir
	p = &entity.Part{Quantity: 2, MinStock: 5, MaxStock: 0}
	assert.Equal(t, 0, entity.ReorderQuantity(p))

	// Estado OK: nada que pedir
	p = &entity.Part{Quantity: 10, MinStock: 5, MaxStock: 20}
	assert.Equal(t, 0, entity.ReorderQuantity(p))
}

func TestClone_HistorialIndependiente(t *testing.T) {
	p := &entity.Part{
		ID:           "p1",
		Quantity:     5,
		StockHistory: []entity.StockLog{{QuantityChange: 5, Type: entity.MovementTypeIn}},
	}
	cp := p.Clone()
	cp.StockHistory = append(cp.StockHistory, entity.StockLog{QuantityChange: -2, Type: entity.MovementTypeOut})

	assert.Len(t, p.StockHistory, 1, "el original no debe ver entradas del clon")
	assert.Len(t, cp.StockHistory, 2)
}
