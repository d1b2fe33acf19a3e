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

const invoiceCollection = "invoices"

type MongoInvoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *MongoInvoiceRepository {
	return &MongoInvoiceRepository{coll: db.Collection(invoiceCollection)}
}

type mongoInvoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Number        string             `bson:"number"`
	PatientID     string             `bson:"patient_id"`
	AppointmentID string             `bson:"appointment_id"`
	AmountCents   int64              `bson:"amount_cents"`
	Description   string             `bson:"description,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	doc := mongoInvoice{
		Number:        inv.Number,
		PatientID:     inv.PatientID,
		AppointmentID: inv.AppointmentID,
		AmountCents:   inv.AmountCents,
		Description:   inv.Description,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt.Unix(),
		UpdatedAt:     inv.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inv.ID = oid.Hex()
	}
	return nil
}

func (r *MongoInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}

	var mi mongoInvoice
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *MongoInvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, int64, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Invoice
	for cur.Next(ctx) {
		var mi mongoInvoice
		if err := cur.Decode(&mi); err != nil {
			return nil, 0, fmt.Errorf("decode invoice: %w", err)
		}
		out = append(out, mi.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, total, nil
}

func (r *MongoInvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvoiceNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (mi mongoInvoice) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:            mi.ID.Hex(),
		Number:        mi.Number,
		PatientID:     mi.PatientID,
		AppointmentID: mi.AppointmentID,
		AmountCents:   mi.AmountCents,
		Description:   mi.Description,
		Status:        domain.InvoiceStatus(mi.Status),
		CreatedAt:     unixToTime(mi.CreatedAt),
		UpdatedAt:     unixToTime(mi.UpdatedAt),
	}
}
