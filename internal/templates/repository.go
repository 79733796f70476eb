package templates

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no template set exists for a user, or no template
// within a set matches a requested name.
var ErrNotFound = errors.New("template not found")

// Repository defines persistence operations for per-user template sets.
type Repository interface {
	// GetByUser returns the template set for userID, or ErrNotFound.
	GetByUser(ctx context.Context, userID int64) (*TemplateSet, error)
	// SeedIfAbsent atomically creates the set for userID with the given templates
	// when none exists, and returns the current set either way. Concurrent callers
	// for the same userID must observe exactly one persisted set.
	SeedIfAbsent(ctx context.Context, userID int64, seed []Template) (*TemplateSet, error)
	// Append atomically appends tpl to the set for userID, creating the set when
	// absent. Existing templates are never overwritten or reordered.
	Append(ctx context.Context, userID int64, tpl Template) (*TemplateSet, error)
	// FindByName returns the first template whose templateName equals name
	// (exact match), or ErrNotFound.
	FindByName(ctx context.Context, userID int64, name string) (Template, error)
	// Defaults reads the read-only default template set used as the seed source.
	Defaults(ctx context.Context) ([]Template, error)
}
