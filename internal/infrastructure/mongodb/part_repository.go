package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/partkeep-api/internal/domain"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// partDoc documento Mongo: un repuesto con su historial embebido, la traducción
// natural del esquema documental original (colección "parts").
type partDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	PartNumber   string    `bson:"partNumber"`
	Description  string    `bson:"description"`
	Category     string    `bson:"category"`
	Supplier     string    `bson:"supplier"`
	Location     string    `bson:"location"`
	Quantity     int       `bson:"quantity"`
	MinStock     int       `bson:"minStock"`
	MaxStock     int       `bson:"maxStock"`
	StockHistory []logDoc  `bson:"stockHistory"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type logDoc struct {
	Date           time.Time `bson:"date"`
	QuantityChange int       `bson:"quantityChange"`
	Type           string    `bson:"type"`
}

// PartRepo implementación del puerto PartRepository sobre MongoDB.
// Las escrituras de cantidad+historial son un solo replace de documento,
// atómico a nivel de documento.
type PartRepo struct {
	coll *mongo.Collection
}

// NewPartRepository conecta al servidor y construye el adaptador.
func NewPartRepository(ctx context.Context, uri, dbName string) (*PartRepo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("conectar a mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &PartRepo{coll: client.Database(dbName).Collection("parts")}, nil
}

// LoadAll carga el catálogo completo.
func (r *PartRepo) LoadAll(ctx context.Context) ([]*entity.Part, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, wrapPersistence("find parts", err)
	}
	defer cursor.Close(ctx)

	var parts []*entity.Part
	for cursor.Next(ctx) {
		var doc partDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapPersistence("decode part", err)
		}
		parts = append(parts, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapPersistence("find parts", err)
	}
	return parts, nil
}

// SaveNew inserta el documento del repuesto.
func (r *PartRepo) SaveNew(ctx context.Context, p *entity.Part) error {
	if _, err := r.coll.InsertOne(ctx, fromEntity(p)); err != nil {
		return wrapPersistence("insert part", err)
	}
	return nil
}

// SaveAttributes actualiza los atributos descriptivos sin tocar quantity ni historial.
func (r *PartRepo) SaveAttributes(ctx context.Context, p *entity.Part) error {
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"partNumber":  p.PartNumber,
		"description": p.Description,
		"category":    p.Category,
		"supplier":    p.Supplier,
		"location":    p.Location,
		"minStock":    p.MinStock,
		"maxStock":    p.MaxStock,
		"updatedAt":   p.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, p.ID, update)
	if err != nil {
		return wrapPersistence("update part", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveQuantityAndHistory escribe cantidad e historial en un solo $set de documento.
func (r *PartRepo) SaveQuantityAndHistory(ctx context.Context, id string, quantity int, history []entity.StockLog) error {
	logs := make([]logDoc, 0, len(history))
	for _, log := range history {
		logs = append(logs, logDoc{Date: log.Date, QuantityChange: log.QuantityChange, Type: log.Type})
	}
	update := bson.M{"$set": bson.M{
		"quantity":     quantity,
		"stockHistory": logs,
		"updatedAt":    time.Now(),
	}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return wrapPersistence("update stock", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (d *partDoc) toEntity() *entity.Part {
	history := make([]entity.StockLog, 0, len(d.StockHistory))
	for _, log := range d.StockHistory {
		history = append(history, entity.StockLog{Date: log.Date, QuantityChange: log.QuantityChange, Type: log.Type})
	}
	return &entity.Part{
		ID:           d.ID,
		Name:         d.Name,
		PartNumber:   d.PartNumber,
		Description:  d.Description,
		Category:     d.Category,
		Supplier:     d.Supplier,
		Location:     d.Location,
		Quantity:     d.Quantity,
		MinStock:     d.MinStock,
		MaxStock:     d.MaxStock,
		StockHistory: history,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromEntity(p *entity.Part) partDoc {
	logs := make([]logDoc, 0, len(p.StockHistory))
	for _, log := range p.StockHistory {
		logs = append(logs, logDoc{Date: log.Date, QuantityChange: log.QuantityChange, Type: log.Type})
	}
	return partDoc{
		ID:           p.ID,
		Name:         p.Name,
		PartNumber:   p.PartNumber,
		Description:  p.Description,
		Category:     p.Category,
		Supplier:     p.Supplier,
		Location:     p.Location,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		StockHistory: logs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func wrapPersistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}
