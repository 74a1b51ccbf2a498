package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

const (
	accountCollection = "accounts"
	roleCollection    = "roles"
)

// Password policy enforced at the store boundary.
const minPasswordLength = 6

// CredentialRepository persists accounts and role memberships in MongoDB.
// Passwords are hashed here with bcrypt; plaintext never reaches a document.
type CredentialRepository struct {
	accounts *mongo.Collection
	roles    *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{
		accounts: db.Collection(accountCollection),
		roles:    db.Collection(roleCollection),
	}
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

type roleDoc struct {
	Name string `bson:"name"`
}

// EnsureIndexes creates the unique username and email indexes. The store is
// the final arbiter of identity uniqueness; concurrent registrations that
// pass the orchestrator's existence checks are rejected here.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure account indexes: %w", err)
	}

	_, err = r.roles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("role_name_unique"),
	})
	if err != nil {
		return fmt.Errorf("ensure role index: %w", err)
	}
	return nil
}

// SeedRoles inserts the given roles if absent. Deployments run this at
// startup so role assignment never races with role provisioning.
func (r *CredentialRepository) SeedRoles(ctx context.Context, roles []string) error {
	for _, role := range roles {
		_, err := r.roles.UpdateOne(ctx,
			bson.M{"name": role},
			bson.M{"$setOnInsert": roleDoc{Name: role}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *CredentialRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toAccount(doc), nil
}

// Create validates the password against the store policy, hashes it, and
// inserts the account. Uniqueness conflicts are reported as the taken
// identity so the orchestrator can surface them like a pre-check failure.
func (r *CredentialRepository) Create(ctx context.Context, account *domain.Account, password string) (*domain.Account, error) {
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	doc := accountDoc{
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: string(hash),
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}

	res, err := r.accounts.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email_unique") {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toAccount(doc), nil
}

// CheckPassword verifies the plaintext against the stored bcrypt hash.
func (r *CredentialRepository) CheckPassword(_ context.Context, account *domain.Account, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("check password: %w", err)
	}
}

func (r *CredentialRepository) RoleExists(ctx context.Context, role string) (bool, error) {
	n, err := r.roles.CountDocuments(ctx, bson.M{"name": role}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("role exists: %w", err)
	}
	return n > 0, nil
}

func (r *CredentialRepository) AddToRole(ctx context.Context, account *domain.Account, role string) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return fmt.Errorf("add to role: invalid account id %q", account.ID)
	}

	res, err := r.accounts.UpdateByID(ctx, oid, bson.M{
		"$addToSet": bson.M{"roles": role},
		"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("add to role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *CredentialRepository) RolesOf(ctx context.Context, account *domain.Account) ([]string, error) {
	current, err := r.findOne(ctx, bson.M{"username": account.Username})
	if err != nil {
		return nil, err
	}
	return current.Roles, nil
}

func toAccount(doc accountDoc) *domain.Account {
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Roles:        doc.Roles,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// checkPasswordPolicy mirrors the identity-store defaults: at least six
// characters, at least one digit.
func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("passwords must be at least %d characters", minPasswordLength)
	}
	if !strings.ContainsAny(password, "0123456789") {
		return errors.New("passwords must have at least one digit ('0'-'9')")
	}
	return nil
}
