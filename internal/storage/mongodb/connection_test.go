package mongodb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yash200611/launchmate/config"
)

func testConfig() config.MongoConfig {
	return config.MongoConfig{
		URI:                    "mongodb://localhost:27017",
		Database:               "launchmate",
		MaxPoolSize:            10,
		MinPoolSize:            5,
		RetryWrites:            true,
		TLS:                    true,
		ConnectTimeout:         5 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
	}
}

func TestClientOptions(t *testing.T) {
	opts := ClientOptions(testConfig())

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(10), *opts.MaxPoolSize)
	require.NotNil(t, opts.MinPoolSize)
	assert.Equal(t, uint64(5), *opts.MinPoolSize)
	require.NotNil(t, opts.RetryWrites)
	assert.True(t, *opts.RetryWrites)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 5*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 5*time.Second, *opts.ServerSelectionTimeout)
	assert.NotNil(t, opts.TLSConfig)
}

func TestStore_ConcurrentCallersShareOneDial(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("single dial", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		var dials atomic.Int32
		release := make(chan struct{})

		store := newWithDialer(testConfig(), func(ctx context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
			dials.Add(1)
			<-release
			return mt.Client, nil
		})

		var wg sync.WaitGroup
		clients := make([]*mongo.Client, 8)
		for i := range clients {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c, err := store.Client(context.Background())
				assert.NoError(t, err)
				clients[i] = c
			}(i)
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), dials.Load())
		for _, c := range clients {
			assert.Same(t, mt.Client, c)
		}
		assert.True(t, store.Connected())
	})
}

func TestStore_ReconnectsAfterInitialFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("best-effort reconnect", func(mt *mtest.T) {
		cfg := testConfig()
		cfg.ReconnectDelay = 10 * time.Millisecond
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		var dials atomic.Int32
		store := newWithDialer(cfg, func(ctx context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
			if dials.Add(1) == 1 {
				return nil, errors.New("server selection timeout")
			}
			return mt.Client, nil
		})

		_, err := store.Client(context.Background())
		require.Error(t, err)
		assert.False(t, store.Connected())

		require.Eventually(t, store.Connected, time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(2), dials.Load())
		require.Eventually(t, store.IndexesReady, time.Second, 5*time.Millisecond,
			"indexes are created by the delayed reconnect")
	})
}

func TestStore_DatabaseUsesConfiguredName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("database name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		store := newWithDialer(testConfig(), func(context.Context, *options.ClientOptions) (*mongo.Client, error) {
			return mt.Client, nil
		})

		coll, err := store.Collection(context.Background(), ProjectsCollection)
		require.NoError(t, err)
		assert.Equal(t, "launchmate", coll.Database().Name())
		assert.Equal(t, "projects", coll.Name())
	})
}

func TestStore_ClosedStoreRefusesClients(t *testing.T) {
	store := newWithDialer(testConfig(), func(context.Context, *options.ClientOptions) (*mongo.Client, error) {
		t.Fatal("dial must not be called after close")
		return nil, nil
	})

	require.NoError(t, store.Close(context.Background()))

	_, err := store.Client(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStore_CallerCancellationDoesNotLeakDial(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	store := newWithDialer(testConfig(), func(ctx context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
		<-release
		return nil, errors.New("never connected")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Client(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_IndexesOnConnect(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("created on first connect", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		store := newWithDialer(testConfig(), func(context.Context, *options.ClientOptions) (*mongo.Client, error) {
			return mt.Client, nil
		})

		assert.False(t, store.IndexesReady())
		_, err := store.Client(context.Background())
		require.NoError(t, err)
		assert.True(t, store.IndexesReady())
	})

	mt.Run("failure is retried by EnsureIndexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "index build refused",
		}))
		store := newWithDialer(testConfig(), func(context.Context, *options.ClientOptions) (*mongo.Client, error) {
			return mt.Client, nil
		})

		_, err := store.Client(context.Background())
		require.NoError(t, err, "connect succeeds without indexes")
		assert.False(t, store.IndexesReady())

		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(t, store.EnsureIndexes(context.Background()))
		assert.True(t, store.IndexesReady())
	})
}
