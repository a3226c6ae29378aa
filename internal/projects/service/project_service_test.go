package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/projects/domain"
	"github.com/yash200611/launchmate/internal/projects/projectstest"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newService(t *testing.T) (*ProjectService, *projectstest.Store) {
	t.Helper()
	store := projectstest.NewStore()
	clock := &stepClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewProjectService(store).WithClock(clock.now), store
}

func TestProjectService_CreateThenList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.CreateInput{
		Title:          "T",
		Description:    "D",
		OwnerEmail:     "a@x.com",
		Problem:        "slow onboarding",
		TargetAudience: "founders",
		Tags:           []string{"saas", "saas", "b2b"},
	})
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, domain.StageIdea, p.Stage)
	assert.Equal(t, domain.VisibilityPrivate, p.Visibility)
	assert.Equal(t, []string{"saas", "b2b"}, p.Tags)
	assert.Equal(t, []string{}, p.Collaborators)
	assert.False(t, p.Favorite)
	assert.Equal(t, p.DateCreated, p.LastEdited)

	items, err := svc.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, *p, items[0])
}

func TestProjectService_ListIsolation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, owner := range []string{"a@x.com", "b@x.com", "A@x.com", "a@x.com"} {
		_, err := svc.Create(ctx, domain.CreateInput{Title: "T", Description: "D", OwnerEmail: owner})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, p := range items {
		assert.Equal(t, "a@x.com", p.OwnerEmail)
	}

	none, err := svc.List(ctx, "c@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectService_ListRequiresOwner(t *testing.T) {
	svc, store := newService(t)

	_, err := svc.List(context.Background(), " ")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Zero(t, store.Ops)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc, store := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateInput{Title: "T", OwnerEmail: "a@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Zero(t, store.Ops)
}

func TestProjectService_UpdatePartialIndependence(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.CreateInput{Title: "T", Description: "D", OwnerEmail: "a@x.com"})
	require.NoError(t, err)

	collabs := []string{"b@x.com"}
	require.NoError(t, svc.Update(ctx, p.ID.Hex(), domain.UpdateInput{Collaborators: &collabs}))

	vis := domain.VisibilityPublic
	require.NoError(t, svc.Update(ctx, p.ID.Hex(), domain.UpdateInput{Visibility: &vis}))

	got, ok := store.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
	assert.Equal(t, []string{"b@x.com"}, got.Collaborators)
	assert.Equal(t, p.DateCreated, got.DateCreated)
	assert.True(t, got.LastEdited.After(p.LastEdited))

	none := []string{}
	require.NoError(t, svc.Update(ctx, p.ID.Hex(), domain.UpdateInput{Collaborators: &none}))
	got, _ = store.Get(p.ID)
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
	assert.Empty(t, got.Collaborators)
}

func TestProjectService_UpdateErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	fav := true

	err := svc.Update(ctx, "", domain.UpdateInput{Favorite: &fav})
	assert.Equal(t, domain.ErrMissingID, err)

	err = svc.Update(ctx, "not-hex", domain.UpdateInput{Favorite: &fav})
	assert.Equal(t, domain.ErrInvalidID, err)

	err = svc.Update(ctx, "65f1c0ffee0000000000beef", domain.UpdateInput{})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	err = svc.Update(ctx, "65f1c0ffee0000000000beef", domain.UpdateInput{Favorite: &fav})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestProjectService_StorageFaultPropagates(t *testing.T) {
	svc, store := newService(t)
	store.Fail = errors.New("connection reset")

	_, err := svc.Create(context.Background(), domain.CreateInput{Title: "T", Description: "D", OwnerEmail: "a@x.com"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindStorage))
	assert.Equal(t, 1, store.Ops)
}

func TestProjectService_Delete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.CreateInput{Title: "T", Description: "D", OwnerEmail: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID.Hex()))
	items, err := svc.List(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.True(t, apperrors.Is(svc.Delete(ctx, p.ID.Hex()), apperrors.KindNotFound))
}
