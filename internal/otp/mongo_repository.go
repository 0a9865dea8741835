package otp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const codesCollection = "otp_codes"

type mongoCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Phone     string             `bson:"phone"`
	Code      string             `bson:"code"`
	Attempts  int                `bson:"attempts"`
	IssuedAt  time.Time          `bson:"issued_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func (m *mongoCode) toEntity() Code {
	return Code{
		ID:        m.ID.Hex(),
		Phone:     m.Phone,
		Code:      m.Code,
		Attempts:  m.Attempts,
		IssuedAt:  m.IssuedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// MongoRepository implements Repository on a MongoDB collection with a TTL
// index, so the store reaps expired codes on its own.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed code repository and ensures its
// indexes exist.
func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	col := db.Collection(codesCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "phone", Value: 1}, {Key: "issued_at", Value: -1}},
		},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("ensure otp_codes indexes", "error", err)
	}

	return &MongoRepository{col: col}
}

// Insert stores a new code record.
func (r *MongoRepository) Insert(ctx context.Context, code Code) error {
	doc := &mongoCode{
		ID:        primitive.NewObjectID(),
		Phone:     code.Phone,
		Code:      code.Code,
		Attempts:  code.Attempts,
		IssuedAt:  code.IssuedAt,
		ExpiresAt: code.ExpiresAt,
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// LatestByPhone returns the most recently issued code record for the phone.
func (r *MongoRepository) LatestByPhone(ctx context.Context, phone string) (Code, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "issued_at", Value: -1}})
	var doc mongoCode
	if err := r.col.FindOne(ctx, bson.M{"phone": phone}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Code{}, ErrNotFound
		}
		return Code{}, err
	}
	return doc.toEntity(), nil
}

// IncrementAttempts records one failed guess against the code record.
func (r *MongoRepository) IncrementAttempts(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"attempts": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByPhone removes every code record for the phone number.
func (r *MongoRepository) DeleteByPhone(ctx context.Context, phone string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"phone": phone})
	return err
}
