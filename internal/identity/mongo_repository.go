package identity

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

const usersCollection = "users"

type mongoUser struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Phone           string             `bson:"phone"`
	Name            string             `bson:"name,omitempty"`
	Email           string             `bson:"email,omitempty"`
	Location        string             `bson:"location,omitempty"`
	Role            string             `bson:"role"`
	ProfileComplete bool               `bson:"profile_complete"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() User {
	return User{
		ID:              m.ID.Hex(),
		Phone:           m.Phone,
		Name:            m.Name,
		Email:           m.Email,
		Location:        m.Location,
		Role:            Role(m.Role),
		ProfileComplete: m.ProfileComplete,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// MongoRepository implements Repository on a MongoDB users collection.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed user repository and ensures the
// unique phone index exists.
func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	col := db.Collection(usersCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := col.Indexes().CreateOne(ctx, index); err != nil {
		logger.Warn("ensure users phone index", "error", err)
	}

	return &MongoRepository{col: col}
}

// InsertOrGet inserts the user, treating a duplicate-key conflict on the phone
// index as "someone else just created it": the existing document is re-read
// and returned with created=false.
func (r *MongoRepository) InsertOrGet(ctx context.Context, user User) (User, bool, error) {
	doc := &mongoUser{
		ID:              primitive.NewObjectID(),
		Phone:           user.Phone,
		Name:            user.Name,
		Email:           user.Email,
		Location:        user.Location,
		Role:            string(user.Role),
		ProfileComplete: user.ProfileComplete,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, ferr := r.FindByPhone(ctx, user.Phone)
			if ferr != nil {
				return User{}, false, ferr
			}
			return existing, false, nil
		}
		return User{}, false, err
	}
	return doc.toEntity(), true, nil
}

// FindByID fetches a user by its hex object id.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	var doc mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return doc.toEntity(), nil
}

// FindByPhone fetches a user by phone number.
func (r *MongoRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	var doc mongoUser
	if err := r.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return doc.toEntity(), nil
}

// UpdateProfile sets the profile fields and marks the profile complete,
// returning the updated document.
func (r *MongoRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrNotFound
	}

	set := bson.M{
		"name":             update.Name,
		"profile_complete": true,
		"updated_at":       time.Now().UTC(),
	}
	if update.Email != "" {
		set["email"] = update.Email
	}
	if update.Location != "" {
		set["location"] = update.Location
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoUser
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return doc.toEntity(), nil
}
