package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type orderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   primitive.ObjectID `bson:"client_id"`
	Items      string             `bson:"items"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	FinishDate *time.Time         `bson:"finish_date,omitempty"`
}

func (d orderDoc) toDomain() domain.Order {
	return domain.Order{
		ID:         d.ID.Hex(),
		ClientID:   d.ClientID.Hex(),
		Items:      d.Items,
		Status:     domain.OrderStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		FinishDate: d.FinishDate,
	}
}

// CreateMany inserts a batch of orders for one client, returning the
// created records with their assigned identifiers.
func (r *OrderRepository) CreateMany(ctx context.Context, orders []*domain.Order) ([]domain.Order, error) {
	docs := make([]any, 0, len(orders))
	for _, o := range orders {
		clientOID, err := primitive.ObjectIDFromHex(o.ClientID)
		if err != nil {
			return nil, domain.ErrClientNotFound
		}
		docs = append(docs, orderDoc{
			ClientID:   clientOID,
			Items:      o.Items,
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt,
			FinishDate: o.FinishDate,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert orders: %w", err)
	}

	created := make([]domain.Order, 0, len(orders))
	for i, o := range orders {
		c := *o
		c.ID = res.InsertedIDs[i].(primitive.ObjectID).Hex()
		created = append(created, c)
	}
	return created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	order := doc.toDomain()
	return &order, nil
}

func (r *OrderRepository) FindByClient(ctx context.Context, clientID string) ([]domain.Order, error) {
	clientOID, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"client_id": clientOID})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, doc.toDomain())
	}
	return orders, cur.Err()
}

// Update writes the mutable fields back. Plain read-modify-write, no
// optimistic locking: concurrent writers race.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	oid, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"items":  order.Items,
			"status": string(order.Status),
		},
	}
	if order.FinishDate != nil {
		update["$set"].(bson.M)["finish_date"] = order.FinishDate
	} else {
		update["$unset"] = bson.M{"finish_date": ""}
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	})
	return err
}
