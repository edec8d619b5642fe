package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexaa/auth-service/internal/core/domain"
)

const userCollection = "users"

// Explicit index names so duplicate-key errors can be attributed to the
// violated constraint without parsing key values.
const (
	usernameIndexName = "uniq_username_ci"
	emailIndexName    = "uniq_email"
)

// usernameCollation makes username lookups and the unique index
// case-insensitive (strength 2 ignores case, keeps diacritics).
var usernameCollation = &options.Collation{Locale: "en", Strength: 2}

// MongoUserRepository implements ports.UserRepository over a MongoDB
// collection. Uniqueness of username and email is enforced by unique indexes;
// a duplicate-key error at insert time is the authoritative verdict under
// concurrent sign-ups.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// EnsureIndexes creates the unique indexes backing the uniqueness invariants.
// Idempotent; called once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(usernameIndexName).SetUnique(true).SetCollation(usernameCollation),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(emailIndexName).SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateField(err)
		}
		return nil, storeErr("insert user", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, usernameCollation)
}

func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email}, nil)
}

func (r *MongoUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username}, usernameCollation)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, collation *options.Collation) (*domain.User, error) {
	opts := options.FindOne()
	if collation != nil {
		opts.SetCollation(collation)
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Roles:        mu.Roles,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}, nil
}

func (r *MongoUserRepository) exists(ctx context.Context, filter bson.M, collation *options.Collation) (bool, error) {
	opts := options.Count().SetLimit(1)
	if collation != nil {
		opts.SetCollation(collation)
	}

	n, err := r.coll.CountDocuments(ctx, filter, opts)
	if err != nil {
		return false, storeErr("count users", err)
	}
	return n > 0, nil
}

// duplicateField attributes a duplicate-key error to the violated constraint
// by the index name in the server message. Matching on key values would
// misfire, e.g. an email like "username@example.com" under the email index.
func duplicateField(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "index: "+usernameIndexName):
		return domain.ErrUsernameTaken
	case strings.Contains(msg, "index: "+emailIndexName):
		return domain.ErrEmailTaken
	}
	// Unknown duplicate index; email is the login identifier.
	return domain.ErrEmailTaken
}

// storeErr classifies a driver failure as a retryable infrastructure error.
// The driver's error text stays server-side; clients only ever see the
// sentinel.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
