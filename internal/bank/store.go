package bank

import (
	"context"

	"github.com/edukita/educbt-studio/internal/question"
)

// Mutator transforms a whole question list into its replacement. It must
// treat the input as read-only and return the full new list; partial
// in-place edits are not part of the contract.
type Mutator func([]question.Question) []question.Question

// Store owns the question lists. All writes go through Replace, which
// applies a whole-list transformation atomically, so no caller ever
// observes a half-mutated workspace. op labels the mutation for the audit
// trail (generate, shuffle, reorder, import, edit, trash, ...).
type Store interface {
	Load(ctx context.Context, workspaceID string) ([]question.Question, error)
	Replace(ctx context.Context, workspaceID, op string, fn Mutator) ([]question.Question, error)
	List(ctx context.Context) ([]WorkspaceSummary, error)
}

// WorkspaceSummary is the listing row for the workspace picker.
type WorkspaceSummary struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Active    int    `json:"active"`
	Trashed   int    `json:"trashed"`
	UpdatedAt int64  `json:"updated_at"`
}

func summarize(id string, qs []question.Question, updatedAt int64) WorkspaceSummary {
	s := WorkspaceSummary{ID: id, UpdatedAt: updatedAt}
	for _, q := range qs {
		if q.IsDeleted {
			s.Trashed++
		} else {
			s.Active++
		}
		if s.Subject == "" {
			s.Subject = q.Subject
		}
	}
	return s
}

func cloneAll(qs []question.Question) []question.Question {
	out := make([]question.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
