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

const appointmentsCollection = "appointments"

type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type appointmentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Details   string             `bson:"details,omitempty"`
	Status    string             `bson:"status"`
	Validated bool               `bson:"validated"`
	ImagePath string             `bson:"image_path,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d appointmentDoc) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Date:      d.Date,
		Time:      d.Time,
		Details:   d.Details,
		Status:    domain.AppointmentStatus(d.Status),
		Validated: d.Validated,
		ImagePath: d.ImagePath,
		CreatedAt: d.CreatedAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	userOID, err := primitive.ObjectIDFromHex(apt.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, appointmentDoc{
		UserID:    userOID,
		Date:      apt.Date,
		Time:      apt.Time,
		Details:   apt.Details,
		Status:    string(apt.Status),
		Validated: apt.Validated,
		ImagePath: apt.ImagePath,
		CreatedAt: apt.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *apt
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	apt := doc.toDomain()
	return &apt, nil
}

func (r *AppointmentRepository) List(ctx context.Context, userID string) ([]domain.Appointment, error) {
	filter := bson.M{}
	if userID != "" {
		userOID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		filter["user_id"] = userOID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var apts []domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		apts = append(apts, doc.toDomain())
	}
	return apts, cur.Err()
}

func (r *AppointmentRepository) Update(ctx context.Context, apt *domain.Appointment) error {
	oid, err := primitive.ObjectIDFromHex(apt.ID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"date":       apt.Date,
		"time":       apt.Time,
		"details":    apt.Details,
		"status":     string(apt.Status),
		"validated":  apt.Validated,
		"image_path": apt.ImagePath,
	}})
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
