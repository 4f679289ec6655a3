package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const ordersCollection = "orders"

type orderDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

func (d orderDocument) toModel() models.Order {
	return models.Order{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoOrderRepository struct {
	coll    *mongo.Collection
	timeout deadline
}

func NewMongoOrderRepository(db *mongo.Database, timeout time.Duration) *MongoOrderRepository {
	return &MongoOrderRepository{
		coll:    db.Collection(ordersCollection),
		timeout: deadline(timeout),
	}
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoOrderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return r.find(ctx, bson.D{{Key: "status", Value: status}})
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	order := doc.toModel()
	return &order, nil
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := orderDocument{
		ID:        primitive.NewObjectID(),
		Email:     order.Email,
		Name:      order.Name,
		Status:    order.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	*order = doc.toModel()
	return nil
}

func (r *MongoOrderRepository) Update(ctx context.Context, order *models.Order) error {
	oid, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	order.UpdatedAt = time.Now().UTC()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "email", Value: order.Email},
		{Key: "name", Value: order.Name},
		{Key: "status", Value: order.Status},
		{Key: "updatedAt", Value: order.UpdatedAt},
	}}}

	result, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.D) ([]models.Order, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toModel())
	}
	return orders, nil
}
