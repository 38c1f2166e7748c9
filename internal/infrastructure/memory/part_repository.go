package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/partkeep-api/internal/domain"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo almacén en memoria del catálogo. Driver por defecto en desarrollo
// y doble de pruebas: mismo contrato que los adaptadores de PostgreSQL y Mongo.
type PartRepo struct {
	mu    sync.RWMutex
	parts map[string]*entity.Part
	order []string

	// FailWith, si no es nil, se devuelve en toda escritura. Para ejercitar
	// en tests la atomicidad ante fallos de persistencia.
	FailWith error
}

// NewPartRepository construye el almacén vacío.
func NewPartRepository() *PartRepo {
	return &PartRepo{parts: make(map[string]*entity.Part)}
}

// LoadAll devuelve copias de todos los repuestos en orden de inserción.
func (r *PartRepo) LoadAll(ctx context.Context) ([]*entity.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Part, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.parts[id].Clone())
	}
	return out, nil
}

// SaveNew guarda un repuesto nuevo.
func (r *PartRepo) SaveNew(ctx context.Context, p *entity.Part) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parts[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.parts[p.ID] = p.Clone()
	return nil
}

// SaveAttributes guarda atributos descriptivos, preservando cantidad e historial.
func (r *PartRepo) SaveAttributes(ctx context.Context, p *entity.Part) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.parts[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := p.Clone()
	next.Quantity = cur.Quantity
	next.StockHistory = cur.StockHistory
	r.parts[p.ID] = next
	return nil
}

// SaveQuantityAndHistory guarda cantidad e historial juntos.
func (r *PartRepo) SaveQuantityAndHistory(ctx context.Context, id string, quantity int, history []entity.StockLog) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	next := cur.Clone()
	next.Quantity = quantity
	next.StockHistory = make([]entity.StockLog, len(history))
	copy(next.StockHistory, history)
	r.parts[id] = next
	return nil
}
