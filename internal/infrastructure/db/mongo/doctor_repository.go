package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medicore/hospital-system/internal/core/domain"
)

const doctorCollection = "doctors"

type MongoDoctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *MongoDoctorRepository {
	return &MongoDoctorRepository{coll: db.Collection(doctorCollection)}
}

// Availability is stored with stringified weekday keys ("0".."6") because
// BSON maps require string keys.
type mongoDoctor struct {
	UserID         string                       `bson:"_id"`
	Specialization string                       `bson:"specialization"`
	LicenseNumber  string                       `bson:"license_number"`
	Availability   map[string]domain.TimeWindow `bson:"availability"`
	CreatedAt      int64                        `bson:"created_at"`
	UpdatedAt      int64                        `bson:"updated_at"`
}

func (r *MongoDoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	doc := mongoDoctor{
		UserID:         d.UserID,
		Specialization: d.Specialization,
		LicenseNumber:  d.LicenseNumber,
		Availability:   encodeAvailability(d.Availability),
		CreatedAt:      d.CreatedAt.Unix(),
		UpdatedAt:      d.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *MongoDoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	var md mongoDoctor
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return md.toDomain(), nil
}

func (r *MongoDoctorRepository) List(ctx context.Context, page, limit int) ([]*domain.Doctor, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count doctors: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list doctors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Doctor
	for cur.Next(ctx) {
		var md mongoDoctor
		if err := cur.Decode(&md); err != nil {
			return nil, 0, fmt.Errorf("decode doctor: %w", err)
		}
		out = append(out, md.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate doctors: %w", err)
	}
	return out, total, nil
}

func (r *MongoDoctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	update := bson.M{"$set": bson.M{
		"specialization": d.Specialization,
		"license_number": d.LicenseNumber,
		"availability":   encodeAvailability(d.Availability),
		"updated_at":     time.Now().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": d.UserID}, update)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

func (md mongoDoctor) toDomain() *domain.Doctor {
	return &domain.Doctor{
		UserID:         md.UserID,
		Specialization: md.Specialization,
		LicenseNumber:  md.LicenseNumber,
		Availability:   decodeAvailability(md.Availability),
		CreatedAt:      unixToTime(md.CreatedAt),
		UpdatedAt:      unixToTime(md.UpdatedAt),
	}
}

func encodeAvailability(wa domain.WeeklyAvailability) map[string]domain.TimeWindow {
	out := make(map[string]domain.TimeWindow, len(wa))
	for day, w := range wa {
		out[strconv.Itoa(int(day))] = w
	}
	return out
}

func decodeAvailability(m map[string]domain.TimeWindow) domain.WeeklyAvailability {
	out := make(domain.WeeklyAvailability, len(m))
	for key, w := range m {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		out[time.Weekday(day)] = w
	}
	return out
}
