package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/auth/domain"
)

type collProvider struct {
	coll *mongo.Collection
	err  error
}

func (p collProvider) Collection(context.Context, string) (*mongo.Collection, error) {
	return p.coll, p.err
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewUserRepository(collProvider{coll: mt.Coll})
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "launchmate.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		u, err := repo.FindByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		repo := NewUserRepository(collProvider{coll: mt.Coll})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "launchmate.users", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := NewUserRepository(collProvider{coll: mt.Coll})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &domain.User{Email: "a@x.com", PasswordHash: "h"}
		require.NoError(t, repo.Insert(context.Background(), u))
		assert.False(t, u.ID.IsZero())
	})

	mt.Run("duplicate email is a conflict", func(mt *mtest.T) {
		repo := NewUserRepository(collProvider{coll: mt.Coll})
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repo.Insert(context.Background(), &domain.User{Email: "a@x.com"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	mt.Run("unavailable store", func(mt *mtest.T) {
		repo := NewUserRepository(collProvider{err: errors.New("dial tcp: refused")})

		_, err := repo.FindByEmail(context.Background(), "a@x.com")
		assert.True(t, apperrors.Is(err, apperrors.KindStorage))
	})
}

func TestSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewSessionRepository(client)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Minute, mr.TTL(revokedKeyPrefix+"jti-1"))

	mr.FastForward(2 * time.Minute)
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "denylist entry expires with the token")

	require.NoError(t, repo.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists(revokedKeyPrefix+"jti-2"))

	mr.Close()
	_, err = repo.IsRevoked(ctx, "jti-3")
	assert.True(t, apperrors.Is(err, apperrors.KindStorage))
}
