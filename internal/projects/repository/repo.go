package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/projects/domain"
	"github.com/yash200611/launchmate/internal/storage/mongodb"
)

// CollectionProvider resolves a collection handle on the shared store.
// *mongodb.Store satisfies it.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

// ProjectRepository provides persistence operations for projects. Every
// method issues exactly one store operation.
type ProjectRepository struct {
	store CollectionProvider
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(store CollectionProvider) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) collection(ctx context.Context, op string) (*mongo.Collection, error) {
	coll, err := r.store.Collection(ctx, mongodb.ProjectsCollection)
	if err != nil {
		return nil, apperrors.Storage(op, err)
	}
	return coll, nil
}

// List returns the projects whose ownerEmail equals owner exactly, most
// recently edited first. An owner without projects gets an empty slice.
func (r *ProjectRepository) List(ctx context.Context, owner string) ([]domain.Project, error) {
	coll, err := r.collection(ctx, "list projects")
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastEdited", Value: -1}})
	cur, err := coll.Find(ctx, bson.D{{Key: "ownerEmail", Value: owner}}, opts)
	if err != nil {
		return nil, apperrors.Storage("list projects", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Project, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperrors.Storage("decode projects", err)
	}
	for i := range out {
		normalizeSlices(&out[i])
	}
	return out, nil
}

// Insert stores p and sets the ID assigned by the store.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	coll, err := r.collection(ctx, "insert project")
	if err != nil {
		return err
	}

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	normalizeSlices(p)

	res, err := coll.InsertOne(ctx, p)
	if err != nil {
		return apperrors.Storage("insert project", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update applies the supplied fields in one atomic single-document update.
// lastEdited becomes max(now, stored lastEdited) so it never moves backwards.
func (r *ProjectRepository) Update(ctx context.Context, id primitive.ObjectID, in domain.UpdateInput, now time.Time) error {
	coll, err := r.collection(ctx, "update project")
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, updatePipeline(in, now))
	if err != nil {
		return apperrors.Storage("update project", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the project with id.
func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection(ctx, "delete project")
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return apperrors.Storage("delete project", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// updatePipeline builds a $set stage. User values are wrapped in $literal so
// strings beginning with "$" are never read as field paths.
func updatePipeline(in domain.UpdateInput, now time.Time) mongo.Pipeline {
	set := bson.D{}
	add := func(key string, v any) {
		set = append(set, bson.E{Key: key, Value: bson.D{{Key: "$literal", Value: v}}})
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Problem != nil {
		add("problem", *in.Problem)
	}
	if in.TargetAudience != nil {
		add("targetAudience", *in.TargetAudience)
	}
	if in.Visibility != nil {
		add("visibility", string(*in.Visibility))
	}
	if in.Stage != nil {
		add("stage", string(*in.Stage))
	}
	if in.Tags != nil {
		add("tags", *in.Tags)
	}
	if in.Collaborators != nil {
		add("collaborators", *in.Collaborators)
	}
	if in.Favorite != nil {
		add("favorite", *in.Favorite)
	}

	set = append(set, bson.E{Key: "lastEdited", Value: bson.D{
		{Key: "$max", Value: bson.A{now, "$lastEdited"}},
	}})

	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

func normalizeSlices(p *domain.Project) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Collaborators == nil {
		p.Collaborators = []string{}
	}
}
