package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Toggled returns the opposite visibility.
func (v Visibility) Toggled() Visibility {
	if v == VisibilityPublic {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// Stage is advisory; any transition between stages is allowed.
type Stage string

const (
	StageIdea        Stage = "idea"
	StageMVP         Stage = "mvp"
	StageFundraising Stage = "fundraising"
	StageLaunched    Stage = "launched"
)

func (s Stage) Valid() bool {
	switch s {
	case StageIdea, StageMVP, StageFundraising, StageLaunched:
		return true
	}
	return false
}

// Project is one startup project owned by ownerEmail. It is shared by the
// repository, the HTTP layer and the client aggregate.
type Project struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Problem        string             `bson:"problem" json:"problem"`
	TargetAudience string             `bson:"targetAudience" json:"targetAudience"`
	Visibility     Visibility         `bson:"visibility" json:"visibility"`
	Stage          Stage              `bson:"stage" json:"stage"`
	Tags           []string           `bson:"tags" json:"tags"`
	Collaborators  []string           `bson:"collaborators" json:"collaborators"`
	Favorite       bool               `bson:"favorite" json:"favorite"`
	OwnerEmail     string             `bson:"ownerEmail" json:"ownerEmail"`
	DateCreated    time.Time          `bson:"dateCreated" json:"dateCreated"`
	LastEdited     time.Time          `bson:"lastEdited" json:"lastEdited"`
}

// Shared reports whether the project has at least one collaborator.
func (p Project) Shared() bool {
	return len(p.Collaborators) > 0
}

// Clone returns a deep copy so callers can mutate slices freely.
func (p Project) Clone() Project {
	out := p
	out.Tags = append([]string{}, p.Tags...)
	out.Collaborators = append([]string{}, p.Collaborators...)
	return out
}

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping the first occurrence order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeCollaborators trims identifiers and drops empty ones, keeping order.
func NormalizeCollaborators(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
