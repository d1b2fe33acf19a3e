package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

const appointmentCollection = "appointments"

type MongoAppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{coll: db.Collection(appointmentCollection)}
}

type mongoAppointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PatientID   string             `bson:"patient_id"`
	DoctorID    string             `bson:"doctor_id"`
	ScheduledAt int64              `bson:"scheduled_at"`
	Reason      string             `bson:"reason"`
	Status      string             `bson:"status"`
	Notes       string             `bson:"notes,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	doc := mongoAppointment{
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		ScheduledAt: a.ScheduledAt.Unix(),
		Reason:      a.Reason,
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.Unix(),
		UpdatedAt:   a.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var ma mongoAppointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAppointmentRepository) List(ctx context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, int64, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Appointment
	for cur.Next(ctx) {
		var ma mongoAppointment
		if err := cur.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate appointments: %w", err)
	}
	return out, total, nil
}

func (r *MongoAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	set := bson.M{
		"status":     string(status),
		"updated_at": time.Now().Unix(),
	}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (ma mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          ma.ID.Hex(),
		PatientID:   ma.PatientID,
		DoctorID:    ma.DoctorID,
		ScheduledAt: unixToTime(ma.ScheduledAt),
		Reason:      ma.Reason,
		Status:      domain.AppointmentStatus(ma.Status),
		Notes:       ma.Notes,
		CreatedAt:   unixToTime(ma.CreatedAt),
		UpdatedAt:   unixToTime(ma.UpdatedAt),
	}
}
