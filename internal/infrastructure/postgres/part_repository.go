package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/partkeep-api/internal/domain"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL.
// Esquema: tabla parts (atributos + quantity) y tabla stock_logs (historial,
// con position para preservar el orden de aplicación). SaveQuantityAndHistory
// corre en una transacción: cantidad e historial quedan juntos o no queda nada.
type PartRepo struct {
	pool *pgxpool.Pool
}

// NewPartRepository construye el adaptador de persistencia para repuestos.
func NewPartRepository(pool *pgxpool.Pool) *PartRepo {
	return &PartRepo{pool: pool}
}

// LoadAll carga todos los repuestos con su historial en orden de aplicación.
func (r *PartRepo) LoadAll(ctx context.Context) ([]*entity.Part, error) {
	query := `
		SELECT id, name, part_number, description, category, supplier, location,
		       quantity, min_stock, max_stock, created_at, updated_at
		FROM parts ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list parts", err)
	}
	defer rows.Close()

	byID := make(map[string]*entity.Part)
	var parts []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.PartNumber, &p.Description, &p.Category,
			&p.Supplier, &p.Location, &p.Quantity, &p.MinStock, &p.MaxStock,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapPersistence("scan part", err)
		}
		p.StockHistory = []entity.StockLog{}
		byID[p.ID] = &p
		parts = append(parts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list parts", err)
	}

	logQuery := `
		SELECT part_id, date, quantity_change, type
		FROM stock_logs ORDER BY part_id, position`
	logRows, err := r.pool.Query(ctx, logQuery)
	if err != nil {
		return nil, wrapPersistence("list stock logs", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		var partID string
		var log entity.StockLog
		if err := logRows.Scan(&partID, &log.Date, &log.QuantityChange, &log.Type); err != nil {
			return nil, wrapPersistence("scan stock log", err)
		}
		if p, ok := byID[partID]; ok {
			p.StockHistory = append(p.StockHistory, log)
		}
	}
	if err := logRows.Err(); err != nil {
		return nil, wrapPersistence("list stock logs", err)
	}
	return parts, nil
}

// SaveNew persiste un repuesto recién creado (historial vacío).
func (r *PartRepo) SaveNew(ctx context.Context, p *entity.Part) error {
	query := `
		INSERT INTO parts (id, name, part_number, description, category, supplier, location,
		                   quantity, min_stock, max_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.PartNumber, p.Description, p.Category, p.Supplier, p.Location,
		p.Quantity, p.MinStock, p.MaxStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrapPersistence("insert part", err)
	}
	return nil
}

// SaveAttributes persiste los atributos descriptivos. No toca quantity ni historial.
func (r *PartRepo) SaveAttributes(ctx context.Context, p *entity.Part) error {
	query := `
		UPDATE parts SET name = $2, part_number = $3, description = $4, category = $5,
		       supplier = $6, location = $7, min_stock = $8, max_stock = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.PartNumber, p.Description, p.Category, p.Supplier, p.Location,
		p.MinStock, p.MaxStock, p.UpdatedAt,
	)
	if err != nil {
		return wrapPersistence("update part", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveQuantityAndHistory reescribe cantidad e historial en una sola transacción,
// siguiendo el contrato de reescritura completa del historial.
func (r *PartRepo) SaveQuantityAndHistory(ctx context.Context, id string, quantity int, history []entity.StockLog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapPersistence("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `UPDATE parts SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return wrapPersistence("update quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM stock_logs WHERE part_id = $1`, id); err != nil {
		return wrapPersistence("clear stock logs", err)
	}
	for i, log := range history {
		_, err := tx.Exec(ctx,
			`INSERT INTO stock_logs (part_id, position, date, quantity_change, type) VALUES ($1, $2, $3, $4, $5)`,
			id, i, log.Date, log.QuantityChange, log.Type,
		)
		if err != nil {
			return wrapPersistence("insert stock log", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapPersistence("commit transaction", err)
	}
	return nil
}

// wrapPersistence marca el error como fallo de persistencia preservando el detalle.
func wrapPersistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}
