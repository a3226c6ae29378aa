package mongodb

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"github.com/yash200611/launchmate/config"
	"github.com/yash200611/launchmate/internal/logging"
)

const (
	ProjectsCollection = "projects"
	UsersCollection    = "users"
)

var ErrClosed = errors.New("mongodb: store closed")

type dialFunc func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// Store owns the single client (and its pool) used for the process lifetime.
// The first caller of Client connects; concurrent callers wait on the same dial.
type Store struct {
	cfg  config.MongoConfig
	dial dialFunc
	log  zerolog.Logger

	group singleflight.Group

	mu          sync.RWMutex
	client      *mongo.Client
	reconnectAt *time.Timer
	closed      bool

	indexed atomic.Bool
}

func New(cfg config.MongoConfig) *Store {
	return newWithDialer(cfg, dialAndPing)
}

func newWithDialer(cfg config.MongoConfig, dial dialFunc) *Store {
	return &Store{
		cfg:  cfg,
		dial: dial,
		log:  logging.WithComponent("mongodb"),
	}
}

// ClientOptions translates the pool settings into driver options.
func ClientOptions(cfg config.MongoConfig) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRetryWrites(cfg.RetryWrites)

	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	return opts
}

func dialAndPing(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Client returns the shared client, connecting on first use.
func (s *Store) Client(ctx context.Context) (*mongo.Client, error) {
	s.mu.RLock()
	client, closed := s.client, s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if client != nil {
		return client, nil
	}

	ch := s.group.DoChan("connect", func() (any, error) {
		return s.connect(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	}
}

func (s *Store) connect(ctx context.Context) (*mongo.Client, error) {
	s.mu.RLock()
	if s.client != nil {
		c := s.client
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	timeout := s.cfg.ConnectTimeout + s.cfg.ServerSelectionTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := s.dial(dctx, ClientOptions(s.cfg))
	if err != nil {
		s.log.Error().Err(err).Msg("mongodb connection failed")
		s.scheduleReconnect()
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = client.Disconnect(context.Background())
		return nil, ErrClosed
	}
	s.client = client
	s.mu.Unlock()
	s.log.Info().Msg("connected to mongodb")

	// Runs on every successful connect, including the delayed reconnect.
	if !s.indexed.Load() {
		if err := s.ensureIndexes(dctx, client.Database(s.cfg.Database)); err != nil {
			s.log.Warn().Err(err).Msg("mongodb indexes not created")
		}
	}
	return client, nil
}

// scheduleReconnect arms a single delayed reconnect attempt. It does not grow
// the delay and a failed attempt simply arms the next one.
func (s *Store) scheduleReconnect() {
	if s.cfg.ReconnectDelay <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.reconnectAt != nil {
		return
	}
	s.reconnectAt = time.AfterFunc(s.cfg.ReconnectDelay, func() {
		s.mu.Lock()
		s.reconnectAt = nil
		s.mu.Unlock()

		s.log.Info().Msg("attempting to reconnect to mongodb")
		_, _ = s.Client(context.Background())
	})
}

// Connected reports whether a client has been established.
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client != nil
}

func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.cfg.Database), nil
}

func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Store) Ping(ctx context.Context) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client and stops any pending reconnect.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.reconnectAt != nil {
		s.reconnectAt.Stop()
		s.reconnectAt = nil
	}
	client := s.client
	s.client = nil
	s.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
