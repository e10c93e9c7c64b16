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

const tailorsCollection = "tailors"

type TailorRepository struct {
	coll *mongo.Collection
}

func NewTailorRepository(db *mongo.Database) *TailorRepository {
	return &TailorRepository{coll: db.Collection(tailorsCollection)}
}

type tailorDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	BusinessName string             `bson:"business_name"`
	Address      string             `bson:"address"`
	Location     string             `bson:"location,omitempty"`
}

func (d tailorDoc) toDomain() *domain.TailorProfile {
	return &domain.TailorProfile{
		ID:           d.ID.Hex(),
		UserID:       d.UserID.Hex(),
		BusinessName: d.BusinessName,
		Address:      d.Address,
		Location:     d.Location,
	}
}

func (r *TailorRepository) Create(ctx context.Context, profile *domain.TailorProfile) (*domain.TailorProfile, error) {
	userOID, err := primitive.ObjectIDFromHex(profile.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, tailorDoc{
		UserID:       userOID,
		BusinessName: profile.BusinessName,
		Address:      profile.Address,
		Location:     profile.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("insert tailor: %w", err)
	}

	created := *profile
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TailorRepository) FindByID(ctx context.Context, id string) (*domain.TailorProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTailorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TailorRepository) FindByUserID(ctx context.Context, userID string) (*domain.TailorProfile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrTailorNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": oid})
}

func (r *TailorRepository) findOne(ctx context.Context, filter bson.M) (*domain.TailorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tailorDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTailorNotFound
		}
		return nil, fmt.Errorf("find tailor: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TailorRepository) List(ctx context.Context) ([]domain.TailorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list tailors: %w", err)
	}
	defer cur.Close(ctx)

	var tailors []domain.TailorProfile
	for cur.Next(ctx) {
		var doc tailorDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tailor: %w", err)
		}
		tailors = append(tailors, *doc.toDomain())
	}
	return tailors, cur.Err()
}

func (r *TailorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTailorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tailor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTailorNotFound
	}
	return nil
}

func (r *TailorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
