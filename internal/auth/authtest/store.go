// Package authtest provides in-memory user and revocation stores for tests.
package authtest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/auth/domain"
)

type Users struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]domain.User
	Fail error
}

func NewUsers() *Users {
	return &Users{byID: make(map[primitive.ObjectID]domain.User)}
}

func (s *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, apperrors.Storage("find user by email", s.Fail)
	}
	for _, u := range s.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, apperrors.Storage("find user by id", s.Fail)
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Users) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return apperrors.Storage("insert user", s.Fail)
	}
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.byID[u.ID] = *u
	return nil
}

// Remove deletes a user, leaving any issued tokens dangling.
func (s *Users) Remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]time.Duration)}
}

func (r *Revocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = ttl
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}
