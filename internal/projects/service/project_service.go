package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yash200611/launchmate/internal/projects/domain"
)

// Store is the persistence surface the service needs.
// *repository.ProjectRepository implements it.
type Store interface {
	List(ctx context.Context, owner string) ([]domain.Project, error)
	Insert(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id primitive.ObjectID, in domain.UpdateInput, now time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProjectService enforces the project contract on top of a Store
type ProjectService struct {
	store Store
	now   func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(store Store) *ProjectService {
	return &ProjectService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source; used by tests.
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// List returns all projects owned by ownerEmail. Matching is exact.
func (s *ProjectService) List(ctx context.Context, ownerEmail string) ([]domain.Project, error) {
	if strings.TrimSpace(ownerEmail) == "" {
		return nil, domain.ErrMissingOwner
	}
	return s.store.List(ctx, ownerEmail)
}

// Create validates and persists a new project, returning it with its id
func (s *ProjectService) Create(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Project{
		Title:          in.Title,
		Description:    in.Description,
		Problem:        in.Problem,
		TargetAudience: in.TargetAudience,
		Visibility:     in.Visibility,
		Stage:          in.Stage,
		Tags:           in.Tags,
		Collaborators:  []string{},
		Favorite:       false,
		OwnerEmail:     in.OwnerEmail,
		DateCreated:    now,
		LastEdited:     now,
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update and refreshes lastEdited
func (s *ProjectService) Update(ctx context.Context, id string, in domain.UpdateInput) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}

	return s.store.Update(ctx, oid, in, s.now())
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, oid)
}

// ParseID converts a hex project id, mapping bad input to validation errors.
func ParseID(id string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID, domain.ErrMissingID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}
