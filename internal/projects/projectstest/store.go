// Package projectstest provides an in-memory project store for tests that
// mirrors the repository's observable behaviour.
package projectstest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/projects/domain"
)

type Store struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]domain.Project

	// Fail, when set, is returned (wrapped as a storage error) by every call.
	Fail error
	Ops  int
}

func NewStore() *Store {
	return &Store{items: make(map[primitive.ObjectID]domain.Project)}
}

func (s *Store) begin(op string) error {
	s.Ops++
	if s.Fail != nil {
		return apperrors.Storage(op, s.Fail)
	}
	return nil
}

func (s *Store) List(_ context.Context, owner string) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin("list projects"); err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(s.items))
	for _, p := range s.items {
		if p.OwnerEmail == owner {
			out = append(out, p.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastEdited.After(out[j].LastEdited)
	})
	return out, nil
}

func (s *Store) Insert(_ context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin("insert project"); err != nil {
		return err
	}

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Collaborators == nil {
		p.Collaborators = []string{}
	}
	s.items[p.ID] = p.Clone()
	return nil
}

func (s *Store) Update(_ context.Context, id primitive.ObjectID, in domain.UpdateInput, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin("update project"); err != nil {
		return err
	}

	p, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	in.Apply(&p)
	if now.After(p.LastEdited) {
		p.LastEdited = now
	}
	s.items[id] = p
	return nil
}

func (s *Store) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin("delete project"); err != nil {
		return err
	}

	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Get returns a copy of the stored project.
func (s *Store) Get(id primitive.ObjectID) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	return p.Clone(), ok
}
