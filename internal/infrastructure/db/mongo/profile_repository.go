package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

const (
	profileCollection = "profiles"
	addressCollection = "addresses"
)

// ProfileRepository persists profiles and addresses in MongoDB.
type ProfileRepository struct {
	profiles  *mongo.Collection
	addresses *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		profiles:  db.Collection(profileCollection),
		addresses: db.Collection(addressCollection),
	}
}

type profileDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	FirstName   string             `bson:"first_name,omitempty"`
	LastName    string             `bson:"last_name,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

type addressDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	AddressLine string             `bson:"address_line"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

// EnsureIndexes creates the per-user profile index.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("profile_user_unique"),
	})
	if err != nil {
		return fmt.Errorf("ensure profile index: %w", err)
	}
	_, err = r.addresses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("address_user"),
	})
	if err != nil {
		return fmt.Errorf("ensure address index: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"first_name":   profile.FirstName,
			"last_name":    profile.LastName,
			"phone_number": profile.PhoneNumber,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"user_id":    profile.UserID,
			"created_at": now,
		},
	}

	var doc profileDoc
	err := r.profiles.FindOneAndUpdate(ctx,
		bson.M{"user_id": profile.UserID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return toProfile(doc), nil
}

func (r *ProfileRepository) FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var doc profileDoc
	if err := r.profiles.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return toProfile(doc), nil
}

func (r *ProfileRepository) InsertAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	now := time.Now().UTC().Unix()
	doc := addressDoc{
		UserID:      address.UserID,
		Title:       address.Title,
		AddressLine: address.AddressLine,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.addresses.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toAddress(doc), nil
}

func (r *ProfileRepository) FindAddress(ctx context.Context, addressID, userID string) (*domain.Address, error) {
	oid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, domain.ErrAddressNotFound
	}

	var doc addressDoc
	if err := r.addresses.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return toAddress(doc), nil
}

func (r *ProfileRepository) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	cursor, err := r.addresses.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Address
	for cursor.Next(ctx) {
		var doc addressDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		out = append(out, *toAddress(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return out, nil
}

func toProfile(doc profileDoc) *domain.Profile {
	return &domain.Profile{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		FirstName:   doc.FirstName,
		LastName:    doc.LastName,
		PhoneNumber: doc.PhoneNumber,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}

func toAddress(doc addressDoc) *domain.Address {
	return &domain.Address{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		Title:       doc.Title,
		AddressLine: doc.AddressLine,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}
