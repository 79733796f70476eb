package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Service encapsulates user-record operations. Every store call runs under a
// bounded timeout and transient failures are retried a few times before being
// surfaced to the caller.
type Service struct {
	repo    Repository
	timeout time.Duration
}

func NewService(r Repository) *Service {
	return &Service{repo: r, timeout: 5 * time.Second}
}

const maxAttempts = 3

func transient(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

func (s *Service) do(ctx context.Context, fn func(context.Context) error) error {
	var err error
	backoff := 100 * time.Millisecond
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err = fn(cctx)
		cancel()
		if err == nil || !transient(err) {
			return err
		}
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return err
}

// Create persists a new user and returns the assigned id.
func (s *Service) Create(ctx context.Context, name string, age int) (string, error) {
	u := &User{Name: name, Age: age}
	var id string
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.repo.Create(ctx, u)
		return err
	})
	return id, err
}

// List returns every stored user, unfiltered.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	var out []*User
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.repo.List(ctx)
		return err
	})
	return out, err
}

// Get returns the user for id. ErrInvalidID for malformed ids, ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	var u *User
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.repo.Get(ctx, id)
		return err
	})
	return u, err
}

// Update merges only the supplied fields and returns the post-update record.
func (s *Service) Update(ctx context.Context, id string, upd Update) (*User, error) {
	var u *User
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.repo.Update(ctx, id, upd)
		return err
	})
	return u, err
}

// Delete removes the user for id and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id string) (*User, error) {
	var u *User
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.repo.Delete(ctx, id)
		return err
	})
	return u, err
}

// FindByName returns users whose name equals name exactly (case-sensitive).
func (s *Service) FindByName(ctx context.Context, name string) ([]*User, error) {
	var out []*User
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.repo.FindByName(ctx, name)
		return err
	})
	return out, err
}
