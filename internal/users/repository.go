package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by every by-id lookup when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidID is returned when an id does not parse as a store ObjectId.
	// Ids are validated before any store round-trip.
	ErrInvalidID = errors.New("invalid user id")
)

// Repository defines persistence operations for users
type Repository interface {
	Create(ctx context.Context, u *User) (string, error)
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, upd Update) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	FindByName(ctx context.Context, name string) ([]*User, error)
}
