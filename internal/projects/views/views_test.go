package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash200611/launchmate/internal/projects/domain"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixtures() []domain.Project {
	return []domain.Project{
		{
			Title: "beta Rocket", Description: "Launch pad", Visibility: domain.VisibilityPublic,
			Tags: []string{"space"}, Collaborators: []string{"b@x.com"}, Favorite: true,
			DateCreated: base, LastEdited: base.Add(3 * time.Hour),
		},
		{
			Title: "Alpha", Description: "Fintech idea", Visibility: domain.VisibilityPrivate,
			Tags: []string{"Payments"}, Collaborators: []string{},
			DateCreated: base.Add(2 * time.Hour), LastEdited: base.Add(time.Hour),
		},
		{
			Title: "Gamma", Description: "Health", Visibility: domain.VisibilityPrivate,
			Tags: []string{}, Collaborators: []string{"c@x.com"}, Favorite: true,
			DateCreated: base.Add(time.Hour), LastEdited: base.Add(2 * time.Hour),
		},
	}
}

func titles(ps []domain.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestApplySorts(t *testing.T) {
	ps := fixtures()

	assert.Equal(t, []string{"beta Rocket", "Gamma", "Alpha"}, titles(Apply(ps, Query{})))
	assert.Equal(t, []string{"Alpha", "beta Rocket", "Gamma"}, titles(Apply(ps, Query{Sort: SortAlphabetical})))
	assert.Equal(t, []string{"Alpha", "Gamma", "beta Rocket"}, titles(Apply(ps, Query{Sort: SortDateCreated})))
}

func TestApplyFilters(t *testing.T) {
	ps := fixtures()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"shared means has collaborators", Query{Scope: ScopeShared}, []string{"beta Rocket", "Gamma"}},
		{"private", Query{Scope: ScopePrivate}, []string{"Gamma", "Alpha"}},
		{"favorites", Query{FavoritesOnly: true}, []string{"beta Rocket", "Gamma"}},
		{"search title case-insensitive", Query{Search: "ROCKET"}, []string{"beta Rocket"}},
		{"search description", Query{Search: "fintech"}, []string{"Alpha"}},
		{"search tags", Query{Search: "pay"}, []string{"Alpha"}},
		{"conjunctive", Query{Scope: ScopePrivate, FavoritesOnly: true}, []string{"Gamma"}},
		{"no match", Query{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Apply(ps, tt.q)))
		})
	}
}

func TestApplyFilterOrderIndependent(t *testing.T) {
	ps := fixtures()
	q := Query{Scope: ScopeShared, FavoritesOnly: true, Search: "a"}

	direct := Apply(ps, q)
	staged := Apply(Apply(Apply(ps, Query{Search: "a"}), Query{FavoritesOnly: true}), Query{Scope: ScopeShared})
	assert.Equal(t, titles(direct), titles(staged))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	ps := fixtures()
	before := titles(ps)

	_ = Apply(ps, Query{Sort: SortAlphabetical, Scope: ScopePrivate})
	assert.Equal(t, before, titles(ps))
}

func TestPartition(t *testing.T) {
	g := Partition(Apply(fixtures(), Query{}))
	assert.Equal(t, []string{"beta Rocket"}, titles(g.Public))
	assert.Equal(t, []string{"Gamma", "Alpha"}, titles(g.Private))

	empty := Partition(nil)
	assert.NotNil(t, empty.Public)
	assert.NotNil(t, empty.Private)
}

func TestParse(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, s)
	_, err = ParseScope("team")
	assert.Error(t, err)

	o, err := ParseSort("alphabetical")
	require.NoError(t, err)
	assert.Equal(t, SortAlphabetical, o)
	_, err = ParseSort("size")
	assert.Error(t, err)
}
