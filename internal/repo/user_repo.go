package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/shahvandan19/Bookly/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert hits the unique email index.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUsername is returned when an insert hits the unique username index.
	ErrDuplicateUsername = errors.New("username already registered")
)

const (
	usersCollection = "users"

	emailIndexName    = "uniq_email"
	usernameIndexName = "uniq_username"
)

// UserRepo provides user persistence.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (dom.User, error)
	FindByUsername(ctx context.Context, username string) (dom.User, error)
	Insert(ctx context.Context, u dom.User) (dom.User, error)
	ListAll(ctx context.Context) ([]dom.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// userDoc is the MongoDB representation of a user account.
type userDoc struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	FirstName         string        `bson:"first_name"`
	LastName          string        `bson:"last_name"`
	Username          string        `bson:"username"`
	Email             string        `bson:"email"`
	PasswordHash      string        `bson:"password_hash"`
	Birthday          *time.Time    `bson:"birthday,omitempty"`
	ProfilePictureURL string        `bson:"profile_picture_url,omitempty"`
	CreatedAt         time.Time     `bson:"created_at"`
}

// MongoUserRepo implements UserRepo with MongoDB.
type MongoUserRepo struct {
	col *mongo.Collection
}

// NewMongoUserRepo returns a new MongoUserRepo over the given database.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique indexes on email and username. The store,
// not this adapter, is the source of truth for uniqueness: concurrent
// duplicate signups race on the index and exactly one wins.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(emailIndexName),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(usernameIndexName),
		},
	})
	return err
}

// FindByEmail returns the user with the given email.
func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (dom.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByUsername returns the user with the given username.
func (r *MongoUserRepo) FindByUsername(ctx context.Context, username string) (dom.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (dom.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return docToUser(doc), nil
}

// Insert stores a new user and returns it with the assigned ID.
func (r *MongoUserRepo) Insert(ctx context.Context, u dom.User) (dom.User, error) {
	doc := userDoc{
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Birthday:          u.Birthday,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.User{}, duplicateKeyError(err)
		}
		return dom.User{}, err
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if ok {
		doc.ID = id
	}
	return docToUser(doc), nil
}

// ListAll returns every stored user. No pagination.
func (r *MongoUserRepo) ListAll(ctx context.Context) ([]dom.User, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]dom.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, docToUser(d))
	}
	return users, nil
}

// DeleteAll removes every stored user and returns the deleted count.
func (r *MongoUserRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// duplicateKeyError maps a Mongo duplicate-key error to the violated field,
// keyed on the explicit index names set in EnsureIndexes.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), usernameIndexName) {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func docToUser(d userDoc) dom.User {
	return dom.User{
		ID:                d.ID.Hex(),
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Username:          d.Username,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		Birthday:          d.Birthday,
		ProfilePictureURL: d.ProfilePictureURL,
		CreatedAt:         d.CreatedAt,
	}
}
