package repository

import (
	"context"

	"github.com/jhoicas/partkeep-api/internal/domain/entity"
)

// PartRepository es el contrato de persistencia del libro de stock.
// El núcleo no dicta la tecnología: hay adaptadores para PostgreSQL,
// MongoDB y memoria. Todas las escrituras deben ser atómicas por repuesto.
type PartRepository interface {
	// LoadAll carga el catálogo completo con historial incluido.
	LoadAll(ctx context.Context) ([]*entity.Part, error)

	// SaveNew persiste un repuesto recién creado (historial vacío).
	SaveNew(ctx context.Context, part *entity.Part) error

	// SaveAttributes persiste los atributos descriptivos de un repuesto.
	// No toca cantidad ni historial.
	SaveAttributes(ctx context.Context, part *entity.Part) error

	// SaveQuantityAndHistory persiste cantidad e historial juntos, como una
	// sola escritura: o ambos quedan, o ninguno.
	SaveQuantityAndHistory(ctx context.Context, id string, quantity int, history []entity.StockLog) error
}
