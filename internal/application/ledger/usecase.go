package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/domain"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/domain/repository"
)

// ChangeHook se invoca tras cada mutación confirmada, con el snapshot vigente.
// Lo usa el índice de catálogo para reconstruir sus facetas.
type ChangeHook func(parts []*entity.Part)

// Ledger es el motor del libro de stock: dueño de los repuestos y de su
// historial append-only. Mantiene el snapshot autoritativo en memoria
// (hidratado desde el repositorio) y serializa las mutaciones por repuesto:
// un candado exclusivo por ID cubre el ciclo completo leer-calcular-persistir.
// Mutaciones sobre repuestos distintos avanzan en paralelo.
//
// Los *entity.Part publicados en el snapshot se tratan como inmutables: toda
// mutación trabaja sobre un Clone y lo intercambia solo después de persistir,
// así una escritura fallida no deja efecto alguno.
type Ledger struct {
	repo repository.PartRepository

	mu    sync.RWMutex
	parts map[string]*entity.Part

	locks sync.Map // part ID -> *sync.Mutex

	// hookMu serializa tomar el snapshot y entregarlo al hook: dos commits
	// concurrentes sobre repuestos distintos no pueden entregar un snapshot
	// viejo después de uno más nuevo.
	hookMu sync.Mutex
	hook   ChangeHook
}

// NewLedger construye el motor sobre el contrato de persistencia.
func NewLedger(repo repository.PartRepository) *Ledger {
	return &Ledger{
		repo:  repo,
		parts: make(map[string]*entity.Part),
	}
}

// SetChangeHook registra el hook de cambios. Llamar antes de Hydrate.
func (l *Ledger) SetChangeHook(hook ChangeHook) {
	l.hook = hook
}

// Hydrate carga el catálogo completo desde el repositorio y publica el snapshot.
func (l *Ledger) Hydrate(ctx context.Context) error {
	parts, err := l.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.parts = make(map[string]*entity.Part, len(parts))
	for _, p := range parts {
		l.parts[p.ID] = p
	}
	l.mu.Unlock()
	l.notify()
	return nil
}

// CreatePart valida y crea un repuesto nuevo con historial vacío.
// Campos requeridos (no vacíos tras trim): name, partNumber, category,
// supplier, location. Los numéricos deben ser >= 0 (0 por defecto).
func (l *Ledger) CreatePart(ctx context.Context, in dto.CreatePartRequest) (*entity.Part, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	in.Category = strings.TrimSpace(in.Category)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" || in.PartNumber == "" || in.Category == "" || in.Supplier == "" || in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStock < 0 || in.MaxStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	part := &entity.Part{
		ID:           uuid.New().String(),
		Name:         in.Name,
		PartNumber:   in.PartNumber,
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Supplier:     in.Supplier,
		Location:     in.Location,
		Quantity:     in.Quantity,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		StockHistory: []entity.StockLog{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := l.repo.SaveNew(ctx, part); err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.parts[part.ID] = part
	l.mu.Unlock()
	l.notify()
	return part, nil
}

// UpdateAttributes actualiza un subconjunto de atributos descriptivos.
// Nunca toca Quantity ni StockHistory: esos solo cambian vía movimientos.
func (l *Ledger) UpdateAttributes(ctx context.Context, id string, in dto.UpdatePartRequest) (*entity.Part, error) {
	unlock := l.lockPart(id)
	defer unlock()

	cur := l.get(id)
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	next := cur.Clone()
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Name = v
	}
	if in.PartNumber != nil {
		v := strings.TrimSpace(*in.PartNumber)
		if v == "" {
			return nil, domain.ErrInvalidInput
		}
		next.PartNumber = v
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		v := strings.TrimSpace(*in.Category)
		if v == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Category = v
	}
	if in.Supplier != nil {
		v := strings.TrimSpace(*in.Supplier)
		if v == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Supplier = v
	}
	if in.Location != nil {
		v := strings.TrimSpace(*in.Location)
		if v == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Location = v
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		next.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		if *in.MaxStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		next.MaxStock = *in.MaxStock
	}
	next.UpdatedAt = time.Now()

	if err := l.repo.SaveAttributes(ctx, next); err != nil {
		return nil, err
	}
	l.commit(next)
	return next, nil
}

// ApplyMovement aplica un movimiento de stock al repuesto indicado.
// Falla con ErrInsufficientStock si la cantidad resultante sería negativa,
// sin efecto alguno: ni cantidad ni historial cambian. Un delta de 0 se
// rechaza como entrada inválida: una entrada sin efecto solo ensucia el
// historial sin representar un evento real.
func (l *Ledger) ApplyMovement(ctx context.Context, id string, quantityChange int, movementType string, date time.Time) (*entity.Part, error) {
	if !entity.ValidMovementType(movementType) || quantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}
	unlock := l.lockPart(id)
	defer unlock()
	return l.applyMovementLocked(ctx, id, quantityChange, movementType, date)
}

// ApplyStockOpname reconcilia un conteo físico contra la cantidad del sistema.
// Si el conteo coincide devuelve (repuesto, false, nil): resultado observable
// de no-operación, sin entrada de historial. Si difiere, registra un ajuste
// por el delta. Todo el ciclo leer-comparar-aplicar corre bajo el mismo
// candado del repuesto.
func (l *Ledger) ApplyStockOpname(ctx context.Context, id string, countedQuantity int, date time.Time) (*entity.Part, bool, error) {
	if countedQuantity < 0 {
		return nil, false, domain.ErrInvalidInput
	}
	unlock := l.lockPart(id)
	defer unlock()

	cur := l.get(id)
	if cur == nil {
		return nil, false, domain.ErrNotFound
	}
	delta := countedQuantity - cur.Quantity
	if delta == 0 {
		return cur, false, nil
	}
	part, err := l.applyMovementLocked(ctx, id, delta, entity.MovementTypeAdjust, date)
	if err != nil {
		return nil, false, err
	}
	return part, true, nil
}

// applyMovementLocked ejecuta el ciclo leer-calcular-persistir-publicar.
// El caller debe tener tomado el candado del repuesto.
func (l *Ledger) applyMovementLocked(ctx context.Context, id string, quantityChange int, movementType string, date time.Time) (*entity.Part, error) {
	cur := l.get(id)
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	newQuantity := cur.Quantity + quantityChange
	if newQuantity < 0 {
		return nil, domain.ErrInsufficientStock
	}
	next := cur.Clone()
	next.Quantity = newQuantity
	next.StockHistory = append(next.StockHistory, entity.StockLog{
		Date:           date,
		QuantityChange: quantityChange,
		Type:           movementType,
	})
	next.UpdatedAt = time.Now()

	// Persistir primero; el snapshot solo se actualiza tras confirmar la
	// escritura, así un fallo de persistencia no deja efecto parcial.
	if err := l.repo.SaveQuantityAndHistory(ctx, id, next.Quantity, next.StockHistory); err != nil {
		return nil, err
	}
	l.commit(next)
	return next, nil
}

// Get devuelve el repuesto publicado con ese ID, o nil si no existe.
func (l *Ledger) Get(id string) *entity.Part {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.parts[id]
}

// Snapshot devuelve los repuestos publicados, ordenados por nombre y luego ID
// para una iteración estable. Lectura sin candados por repuesto: los reportes
// pueden correr en paralelo con mutaciones (consistencia por repuesto).
func (l *Ledger) Snapshot() []*entity.Part {
	l.mu.RLock()
	out := make([]*entity.Part, 0, len(l.parts))
	for _, p := range l.parts {
		out = append(out, p)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// lockPart toma el candado exclusivo del repuesto y devuelve su release.
// Se libera en todas las salidas, incluidas las de validación fallida.
// El mapa de candados solo crece: los repuestos no se eliminan, así que
// queda acotado por el tamaño del catálogo.
func (l *Ledger) lockPart(id string) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (l *Ledger) get(id string) *entity.Part {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.parts[id]
}

func (l *Ledger) commit(p *entity.Part) {
	l.mu.Lock()
	l.parts[p.ID] = p
	l.mu.Unlock()
	l.notify()
}

func (l *Ledger) notify() {
	if l.hook == nil {
		return
	}
	l.hookMu.Lock()
	defer l.hookMu.Unlock()
	l.hook(l.Snapshot())
}
