package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The store also
// runs it after connecting, so callers only need it to force a retry.
// Creating an existing index is a no-op on the server.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	db, err := s.Database(ctx)
	if err != nil {
		return err
	}
	return s.ensureIndexes(ctx, db)
}

// IndexesReady reports whether index creation has succeeded once.
func (s *Store) IndexesReady() bool {
	return s.indexed.Load()
}

func (s *Store) ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	if _, err := db.Collection(ProjectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerEmail", Value: 1}, {Key: "lastEdited", Value: -1}},
		Options: options.Index().SetName("projects_owner_last_edited"),
	}); err != nil {
		return fmt.Errorf("create projects index: %w", err)
	}

	s.indexed.Store(true)
	return nil
}
