package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yash200611/launchmate/internal/cache"
	"github.com/yash200611/launchmate/internal/logging"
	"github.com/yash200611/launchmate/internal/projects/domain"
	"github.com/yash200611/launchmate/internal/projects/views"
)

// ProjectAPI is the server surface the aggregate needs. *API implements it.
type ProjectAPI interface {
	ListProjects(ctx context.Context, ownerEmail string) ([]domain.Project, error)
	CreateProject(ctx context.Context, in domain.CreateInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, in domain.UpdateInput) error
	DeleteProject(ctx context.Context, id string) error
}

// ProjectAggregate holds one owner's projects in memory. State is mirrored
// into a cache.Store snapshot after every change; the server stays the
// source of truth and Load always refreshes after hydrating.
type ProjectAggregate struct {
	api   ProjectAPI
	store cache.Store
	owner string
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.Mutex
	projects []domain.Project
}

// NewProjectAggregate builds an aggregate for owner. store may be nil.
func NewProjectAggregate(api ProjectAPI, store cache.Store, owner string) *ProjectAggregate {
	return &ProjectAggregate{
		api:      api,
		store:    store,
		owner:    owner,
		log:      logging.WithComponent("project-aggregate"),
		now:      func() time.Time { return time.Now().UTC() },
		projects: []domain.Project{},
	}
}

func (a *ProjectAggregate) snapshotKey() string { return "projects:" + a.owner }

// Load hydrates from the snapshot and then refreshes from the server. Without
// an owner it logs and returns; there is nothing to load before sign-in.
func (a *ProjectAggregate) Load(ctx context.Context) error {
	if a.owner == "" {
		a.log.Info().Msg("no owner identity yet; skipping project load")
		return nil
	}

	if a.store != nil {
		var cached []domain.Project
		ok, err := a.store.Load(ctx, a.snapshotKey(), &cached)
		switch {
		case err != nil:
			a.log.Warn().Err(err).Msg("project snapshot unreadable")
		case ok:
			a.mu.Lock()
			a.projects = normalizeAll(cached)
			a.mu.Unlock()
		}
	}

	return a.Refresh(ctx)
}

// Refresh replaces local state with the server's list.
func (a *ProjectAggregate) Refresh(ctx context.Context) error {
	if a.owner == "" {
		return nil
	}
	items, err := a.api.ListProjects(ctx, a.owner)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.projects = normalizeAll(items)
	a.mu.Unlock()
	a.persist(ctx)
	return nil
}

// Add creates a project on the server and prepends the result. On failure it
// returns (nil, err) and local state is untouched.
func (a *ProjectAggregate) Add(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	if in.OwnerEmail == "" {
		in.OwnerEmail = a.owner
	}
	p, err := a.api.CreateProject(ctx, in)
	if err != nil {
		a.log.Warn().Err(err).Msg("create project failed")
		return nil, err
	}

	created := p.Clone()
	a.mu.Lock()
	a.projects = append([]domain.Project{created}, a.projects...)
	a.mu.Unlock()
	a.persist(ctx)

	out := created.Clone()
	return &out, nil
}

// Update persists a partial update and then applies it locally.
func (a *ProjectAggregate) Update(ctx context.Context, id string, in domain.UpdateInput) error {
	if _, ok := a.Get(id); !ok {
		return domain.ErrNotFound
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := a.api.UpdateProject(ctx, id, in); err != nil {
		return err
	}

	a.mu.Lock()
	if i := a.index(id); i >= 0 {
		in.Apply(&a.projects[i])
		a.touch(&a.projects[i])
	}
	a.mu.Unlock()
	a.persist(ctx)
	return nil
}

// ToggleFavorite flips favorite locally, persists it and rolls back on failure.
func (a *ProjectAggregate) ToggleFavorite(ctx context.Context, id string) error {
	return a.toggle(ctx, id, func(p *domain.Project) domain.UpdateInput {
		p.Favorite = !p.Favorite
		v := p.Favorite
		return domain.UpdateInput{Favorite: &v}
	})
}

// ToggleVisibility flips public/private locally, persists it and rolls back on failure.
func (a *ProjectAggregate) ToggleVisibility(ctx context.Context, id string) error {
	return a.toggle(ctx, id, func(p *domain.Project) domain.UpdateInput {
		p.Visibility = p.Visibility.Toggled()
		v := p.Visibility
		return domain.UpdateInput{Visibility: &v}
	})
}

func (a *ProjectAggregate) toggle(ctx context.Context, id string, flip func(*domain.Project) domain.UpdateInput) error {
	a.mu.Lock()
	i := a.index(id)
	if i < 0 {
		a.mu.Unlock()
		return domain.ErrNotFound
	}
	before := a.projects[i].Clone()
	in := flip(&a.projects[i])
	a.touch(&a.projects[i])
	a.mu.Unlock()

	if err := a.api.UpdateProject(ctx, id, in); err != nil {
		a.mu.Lock()
		if j := a.index(id); j >= 0 {
			a.projects[j].Favorite = before.Favorite
			a.projects[j].Visibility = before.Visibility
			a.projects[j].LastEdited = before.LastEdited
		}
		a.mu.Unlock()
		a.log.Warn().Err(err).Str("project_id", id).Msg("toggle rolled back")
		return err
	}

	a.persist(ctx)
	return nil
}

// Delete removes the project on the server, then locally.
func (a *ProjectAggregate) Delete(ctx context.Context, id string) error {
	if _, ok := a.Get(id); !ok {
		return domain.ErrNotFound
	}
	if err := a.api.DeleteProject(ctx, id); err != nil {
		return err
	}

	a.mu.Lock()
	if i := a.index(id); i >= 0 {
		a.projects = append(a.projects[:i:i], a.projects[i+1:]...)
	}
	a.mu.Unlock()
	a.persist(ctx)
	return nil
}

func (a *ProjectAggregate) Get(id string) (domain.Project, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i := a.index(id); i >= 0 {
		return a.projects[i].Clone(), true
	}
	return domain.Project{}, false
}

// Projects returns a copy of local state in its stored order.
func (a *ProjectAggregate) Projects() []domain.Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Project, len(a.projects))
	for i, p := range a.projects {
		out[i] = p.Clone()
	}
	return out
}

// View derives a filtered and sorted list without a network call.
func (a *ProjectAggregate) View(q views.Query) []domain.Project {
	return views.Apply(a.Projects(), q)
}

// index must be called with mu held.
func (a *ProjectAggregate) index(id string) int {
	for i := range a.projects {
		if a.projects[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}

// touch must be called with mu held. lastEdited never moves backwards.
func (a *ProjectAggregate) touch(p *domain.Project) {
	if now := a.now(); now.After(p.LastEdited) {
		p.LastEdited = now
	}
}

func (a *ProjectAggregate) persist(ctx context.Context) {
	if a.store == nil || a.owner == "" {
		return
	}
	if err := a.store.Save(ctx, a.snapshotKey(), a.Projects()); err != nil {
		a.log.Warn().Err(err).Msg("project snapshot not saved")
	}
}

func normalizeAll(ps []domain.Project) []domain.Project {
	out := make([]domain.Project, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Clone())
	}
	return out
}
