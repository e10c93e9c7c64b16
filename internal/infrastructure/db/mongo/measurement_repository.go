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

const measurementsCollection = "measurements"

type MeasurementRepository struct {
	coll *mongo.Collection
}

func NewMeasurementRepository(db *mongo.Database) *MeasurementRepository {
	return &MeasurementRepository{coll: db.Collection(measurementsCollection)}
}

type measurementDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Height    float64            `bson:"height"`
	Weight    float64            `bson:"weight"`
	ChestSize float64            `bson:"chest_size"`
	WaistSize float64            `bson:"waist_size"`
	HipSize   float64            `bson:"hip_size"`
}

func (d measurementDoc) toDomain() domain.Measurement {
	return domain.Measurement{
		ID:        d.ID.Hex(),
		ClientID:  d.ClientID.Hex(),
		Height:    d.Height,
		Weight:    d.Weight,
		ChestSize: d.ChestSize,
		WaistSize: d.WaistSize,
		HipSize:   d.HipSize,
	}
}

func (r *MeasurementRepository) CreateMany(ctx context.Context, measurements []*domain.Measurement) ([]domain.Measurement, error) {
	docs := make([]any, 0, len(measurements))
	for _, m := range measurements {
		clientOID, err := primitive.ObjectIDFromHex(m.ClientID)
		if err != nil {
			return nil, domain.ErrClientNotFound
		}
		docs = append(docs, measurementDoc{
			ClientID:  clientOID,
			Height:    m.Height,
			Weight:    m.Weight,
			ChestSize: m.ChestSize,
			WaistSize: m.WaistSize,
			HipSize:   m.HipSize,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert measurements: %w", err)
	}

	created := make([]domain.Measurement, 0, len(measurements))
	for i, m := range measurements {
		c := *m
		c.ID = res.InsertedIDs[i].(primitive.ObjectID).Hex()
		created = append(created, c)
	}
	return created, nil
}

func (r *MeasurementRepository) FindByID(ctx context.Context, id string) (*domain.Measurement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMeasurementNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc measurementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMeasurementNotFound
		}
		return nil, fmt.Errorf("find measurement: %w", err)
	}
	m := doc.toDomain()
	return &m, nil
}

func (r *MeasurementRepository) FindByClient(ctx context.Context, clientID string) ([]domain.Measurement, error) {
	clientOID, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"client_id": clientOID})
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer cur.Close(ctx)

	var measurements []domain.Measurement
	for cur.Next(ctx) {
		var doc measurementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode measurement: %w", err)
		}
		measurements = append(measurements, doc.toDomain())
	}
	return measurements, cur.Err()
}

func (r *MeasurementRepository) Update(ctx context.Context, m *domain.Measurement) error {
	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return domain.ErrMeasurementNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"height":     m.Height,
		"weight":     m.Weight,
		"chest_size": m.ChestSize,
		"waist_size": m.WaistSize,
		"hip_size":   m.HipSize,
	}})
	if err != nil {
		return fmt.Errorf("update measurement: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMeasurementNotFound
	}
	return nil
}

func (r *MeasurementRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMeasurementNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete measurement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMeasurementNotFound
	}
	return nil
}

func (r *MeasurementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	})
	return err
}
