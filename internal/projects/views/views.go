// Package views derives the dashboard's filtered and sorted project lists.
// Every function is pure and never mutates its input slice.
package views

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yash200611/launchmate/internal/projects/domain"
)

type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeShared  Scope = "shared"
	ScopePrivate Scope = "private"
)

type Sort string

const (
	SortLastEdited   Sort = "lastEdited"
	SortAlphabetical Sort = "alphabetical"
	SortDateCreated  Sort = "dateCreated"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeShared, ScopePrivate:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q (want all, shared or private)", s)
}

func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", SortLastEdited:
		return SortLastEdited, nil
	case SortAlphabetical, SortDateCreated:
		return Sort(s), nil
	}
	return "", fmt.Errorf("unknown sort %q (want lastEdited, alphabetical or dateCreated)", s)
}

// Query selects a view. Filters are AND-combined; the zero value lists
// everything by lastEdited.
type Query struct {
	Scope         Scope
	FavoritesOnly bool
	Search        string
	Sort          Sort
}

// Matches reports whether p passes every filter in q.
func (q Query) Matches(p domain.Project) bool {
	switch q.Scope {
	case ScopeShared:
		if !p.Shared() {
			return false
		}
	case ScopePrivate:
		if p.Visibility != domain.VisibilityPrivate {
			return false
		}
	}
	if q.FavoritesOnly && !p.Favorite {
		return false
	}
	return matchesSearch(p, q.Search)
}

func matchesSearch(p domain.Project, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Apply filters and sorts projects into a new slice.
func Apply(projects []domain.Project, q Query) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if q.Matches(p) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortAlphabetical:
		col := collate.New(language.English, collate.Loose)
		slices.SortStableFunc(out, func(a, b domain.Project) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortDateCreated:
		slices.SortStableFunc(out, func(a, b domain.Project) int {
			return b.DateCreated.Compare(a.DateCreated)
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.Project) int {
			return b.LastEdited.Compare(a.LastEdited)
		})
	}
	return out
}

// Groups is a view split the way the dashboard renders it.
type Groups struct {
	Public  []domain.Project
	Private []domain.Project
}

// Partition splits projects by visibility, keeping their order.
func Partition(projects []domain.Project) Groups {
	g := Groups{Public: []domain.Project{}, Private: []domain.Project{}}
	for _, p := range projects {
		if p.Visibility == domain.VisibilityPublic {
			g.Public = append(g.Public, p)
		} else {
			g.Private = append(g.Private, p)
		}
	}
	return g
}
