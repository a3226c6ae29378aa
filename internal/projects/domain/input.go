package domain

import (
	"strings"

	"github.com/yash200611/launchmate/internal/apperrors"
)

const MsgMissingRequired = "Missing required fields"

// CreateInput is the validated shape of a project creation request.
type CreateInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	OwnerEmail     string     `json:"ownerEmail"`
	Problem        string     `json:"problem,omitempty"`
	TargetAudience string     `json:"targetAudience,omitempty"`
	Visibility     Visibility `json:"visibility,omitempty"`
	Stage          Stage      `json:"stage,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// Normalize applies the documented defaults and cleans tags. Free text and
// ownerEmail are stored as given so List matches them exactly.
func (in *CreateInput) Normalize() {
	if in.Visibility == "" {
		in.Visibility = VisibilityPrivate
	}
	if in.Stage == "" {
		in.Stage = StageIdea
	}
	in.Tags = NormalizeTags(in.Tags)
}

func (in CreateInput) Validate() error {
	switch {
	case blank(in.Title):
		return apperrors.Validation("title", MsgMissingRequired)
	case blank(in.Description):
		return apperrors.Validation("description", MsgMissingRequired)
	case blank(in.OwnerEmail):
		return apperrors.Validation("ownerEmail", MsgMissingRequired)
	}
	if in.Visibility != "" && !in.Visibility.Valid() {
		return apperrors.Validation("visibility", "visibility must be public or private")
	}
	if in.Stage != "" && !in.Stage.Valid() {
		return apperrors.Validation("stage", "stage must be one of idea, mvp, fundraising, launched")
	}
	return nil
}

// UpdateInput carries only the fields a caller supplied. Nil means untouched.
type UpdateInput struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Problem        *string     `json:"problem,omitempty"`
	TargetAudience *string     `json:"targetAudience,omitempty"`
	Visibility     *Visibility `json:"visibility,omitempty"`
	Stage          *Stage      `json:"stage,omitempty"`
	Tags           *[]string   `json:"tags,omitempty"`
	Collaborators  *[]string   `json:"collaborators,omitempty"`
	Favorite       *bool       `json:"favorite,omitempty"`
}

func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Problem == nil &&
		in.TargetAudience == nil && in.Visibility == nil && in.Stage == nil &&
		in.Tags == nil && in.Collaborators == nil && in.Favorite == nil
}

func (in *UpdateInput) Normalize() {
	if in.Tags != nil {
		tags := NormalizeTags(*in.Tags)
		in.Tags = &tags
	}
	if in.Collaborators != nil {
		ids := NormalizeCollaborators(*in.Collaborators)
		in.Collaborators = &ids
	}
}

func (in UpdateInput) Validate() error {
	if in.Empty() {
		return apperrors.Validation("", "No updatable fields supplied")
	}
	if in.Title != nil && blank(*in.Title) {
		return apperrors.Validation("title", "title must not be empty")
	}
	if in.Description != nil && blank(*in.Description) {
		return apperrors.Validation("description", "description must not be empty")
	}
	if in.Visibility != nil && !in.Visibility.Valid() {
		return apperrors.Validation("visibility", "visibility must be public or private")
	}
	if in.Stage != nil && !in.Stage.Valid() {
		return apperrors.Validation("stage", "stage must be one of idea, mvp, fundraising, launched")
	}
	return nil
}

// Apply copies the supplied fields onto p. The caller stamps LastEdited.
func (in UpdateInput) Apply(p *Project) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Problem != nil {
		p.Problem = *in.Problem
	}
	if in.TargetAudience != nil {
		p.TargetAudience = *in.TargetAudience
	}
	if in.Visibility != nil {
		p.Visibility = *in.Visibility
	}
	if in.Stage != nil {
		p.Stage = *in.Stage
	}
	if in.Tags != nil {
		p.Tags = append([]string{}, (*in.Tags)...)
	}
	if in.Collaborators != nil {
		p.Collaborators = append([]string{}, (*in.Collaborators)...)
	}
	if in.Favorite != nil {
		p.Favorite = *in.Favorite
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
