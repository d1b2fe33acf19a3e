package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medicore/hospital-system/internal/core/domain"
)

const patientCollection = "patients"

type MongoPatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *MongoPatientRepository {
	return &MongoPatientRepository{coll: db.Collection(patientCollection)}
}

// Patients are keyed by the owning user's ID rather than their own ObjectID,
// so profile lookups never need a join.
type mongoPatient struct {
	UserID           string                  `bson:"_id"`
	DateOfBirth      int64                   `bson:"date_of_birth"`
	Gender           string                  `bson:"gender"`
	Phone            string                  `bson:"phone"`
	Address          string                  `bson:"address"`
	EmergencyContact domain.EmergencyContact `bson:"emergency_contact"`
	History          domain.MedicalHistory   `bson:"medical_history"`
	CreatedAt        int64                   `bson:"created_at"`
	UpdatedAt        int64                   `bson:"updated_at"`
}

func (r *MongoPatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	doc := mongoPatient{
		UserID:           p.UserID,
		Gender:           string(p.Gender),
		Phone:            p.Phone,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		History:          p.History,
		CreatedAt:        p.CreatedAt.Unix(),
		UpdatedAt:        p.UpdatedAt.Unix(),
	}
	if !p.DateOfBirth.IsZero() {
		doc.DateOfBirth = p.DateOfBirth.Unix()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *MongoPatientRepository) FindByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	var mp mongoPatient
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPatientRepository) List(ctx context.Context, page, limit int) ([]*domain.Patient, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Patient
	for cur.Next(ctx) {
		var mp mongoPatient
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode patient: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate patients: %w", err)
	}
	return out, total, nil
}

func (r *MongoPatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	set := bson.M{
		"gender":            string(p.Gender),
		"phone":             p.Phone,
		"address":           p.Address,
		"emergency_contact": p.EmergencyContact,
		"medical_history":   p.History,
		"updated_at":        time.Now().Unix(),
	}
	if !p.DateOfBirth.IsZero() {
		set["date_of_birth"] = p.DateOfBirth.Unix()
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.UserID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (mp mongoPatient) toDomain() *domain.Patient {
	return &domain.Patient{
		UserID:           mp.UserID,
		DateOfBirth:      unixToTime(mp.DateOfBirth),
		Gender:           domain.Gender(mp.Gender),
		Phone:            mp.Phone,
		Address:          mp.Address,
		EmergencyContact: mp.EmergencyContact,
		History:          mp.History,
		CreatedAt:        unixToTime(mp.CreatedAt),
		UpdatedAt:        unixToTime(mp.UpdatedAt),
	}
}
