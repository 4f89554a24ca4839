package model

import (
	"github.com/go-openapi/strfmt"
)

// Priority is the optional urgency attached to a study.
type Priority string

const (
	PriorityLow    Priority = "baixa"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Study is a planned or completed study session.
// JSON names follow the public API (/api/estudos).
type Study struct {
	ID          int64            `json:"id"`
	Title       string           `json:"titulo"`
	Duration    float64          `json:"duracao"`
	Completed   bool             `json:"concluido"`
	Description *string          `json:"descricao,omitempty"`
	Category    *string          `json:"categoria,omitempty"`
	Priority    *Priority        `json:"prioridade,omitempty"`
	CreatedAt   *strfmt.DateTime `json:"dataCriacao,omitempty"`
}

// StudyInput carries the fields accepted on create. ID and CreatedAt are
// assigned by the store.
type StudyInput struct {
	Title       string    `json:"titulo"`
	Duration    float64   `json:"duracao"`
	Completed   bool      `json:"concluido"`
	Description *string   `json:"descricao,omitempty"`
	Category    *string   `json:"categoria,omitempty"`
	Priority    *Priority `json:"prioridade,omitempty"`
}

// StudyPatch identifies a study by ID and carries the fields to overwrite.
// A nil field means "not supplied" and leaves the stored value untouched.
type StudyPatch struct {
	ID          int64     `json:"id"`
	Title       *string   `json:"titulo,omitempty"`
	Duration    *float64  `json:"duracao,omitempty"`
	Completed   *bool     `json:"concluido,omitempty"`
	Description *string   `json:"descricao,omitempty"`
	Category    *string   `json:"categoria,omitempty"`
	Priority    *Priority `json:"prioridade,omitempty"`
}

// NewStudy builds a study from create input. The caller assigns the id and,
// for persistent stores, the creation time.
func NewStudy(id int64, in StudyInput) *Study {
	return &Study{
		ID:          id,
		Title:       in.Title,
		Duration:    in.Duration,
		Completed:   in.Completed,
		Description: cloneString(in.Description),
		Category:    cloneString(in.Category),
		Priority:    clonePriority(in.Priority),
	}
}

// Apply shallow-merges the supplied fields of p over s and returns the result.
// s is not modified. ID and CreatedAt are never changed.
func (p StudyPatch) Apply(s Study) Study {
	out := s.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.Description != nil {
		out.Description = cloneString(p.Description)
	}
	if p.Category != nil {
		out.Category = cloneString(p.Category)
	}
	if p.Priority != nil {
		out.Priority = clonePriority(p.Priority)
	}
	return out
}

// PatchFrom returns a patch that overwrites every field of s. Useful when the
// caller holds a full record, as the web form did.
func PatchFrom(s Study) StudyPatch {
	title, duration, completed := s.Title, s.Duration, s.Completed
	return StudyPatch{
		ID:          s.ID,
		Title:       &title,
		Duration:    &duration,
		Completed:   &completed,
		Description: cloneString(s.Description),
		Category:    cloneString(s.Category),
		Priority:    clonePriority(s.Priority),
	}
}

// Clone returns a deep copy of s.
func (s Study) Clone() Study {
	out := s
	out.Description = cloneString(s.Description)
	out.Category = cloneString(s.Category)
	out.Priority = clonePriority(s.Priority)
	if s.CreatedAt != nil {
		t := *s.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func clonePriority(v *Priority) *Priority {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
