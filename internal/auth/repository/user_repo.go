package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/auth/domain"
	"github.com/yash200611/launchmate/internal/storage/mongodb"
)

// CollectionProvider resolves a collection handle on the shared store.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

type UserRepository struct {
	store CollectionProvider
}

func NewUserRepository(store CollectionProvider) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) collection(ctx context.Context, op string) (*mongo.Collection, error) {
	coll, err := r.store.Collection(ctx, mongodb.UsersCollection)
	if err != nil {
		return nil, apperrors.Storage(op, err)
	}
	return coll, nil
}

// FindByEmail matches email exactly.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, "find user by id", bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter bson.D) (*domain.User, error) {
	coll, err := r.collection(ctx, op)
	if err != nil {
		return nil, err
	}

	var u domain.User
	err = coll.FindOne(ctx, filter, options.FindOne()).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(op, err)
	}
	return &u, nil
}

// Insert stores u and assigns its id. A duplicate email surfaces as
// domain.ErrUserExists through the unique index on users.email.
func (r *UserRepository) Insert(ctx context.Context, u *domain.User) error {
	coll, err := r.collection(ctx, "insert user")
	if err != nil {
		return err
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	res, err := coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return apperrors.Storage("insert user", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}
