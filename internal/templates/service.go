package templates

import (
	"context"
	"errors"
	"time"

	"github.com/tngo0508/simple-crud-api/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidTemplate is returned when a template to append carries no usable
// templateName. Nothing else about the payload is validated.
var ErrInvalidTemplate = errors.New("template must carry a templateName")

// Service implements template provisioning and lookup: fetch-or-seed on first
// access, append-only saves, exact-name retrieval. Store calls run under a
// bounded timeout with a small retry on transient errors.
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

// GetAllForUser returns the user's template set, lazily provisioning it from the
// default set on first access. Each seeded template gets a fresh id; the copy
// preserves count and templateName values exactly. The insert-if-absent is a
// single atomic store operation, so concurrent first accesses still produce
// exactly one persisted set.
func (s *Service) GetAllForUser(ctx context.Context, userID int64) (*TemplateSet, error) {
	var set *TemplateSet
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.repo.GetByUser(ctx, userID)
		return err
	})
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var defaults []Template
	if err := s.do(ctx, func(ctx context.Context) error {
		var err error
		defaults, err = s.repo.Defaults(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	seed := make([]Template, 0, len(defaults))
	for _, t := range defaults {
		seed = append(seed, t.clone())
	}

	if err := s.do(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.repo.SeedIfAbsent(ctx, userID, seed)
		return err
	}); err != nil {
		return nil, err
	}
	metrics.TemplateSeeds.Inc()
	return set, nil
}

// Append assigns a fresh id to tpl and appends it to the user's set, creating
// the set when none exists. Existing entries are never touched.
func (s *Service) Append(ctx context.Context, userID int64, tpl Template) (*TemplateSet, error) {
	if tpl == nil || tpl.Name() == "" {
		return nil, ErrInvalidTemplate
	}
	var set *TemplateSet
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.repo.Append(ctx, userID, tpl.clone())
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.TemplateAppends.Inc()
	return set, nil
}

// GetByName returns the first template of the user's set whose templateName
// equals name exactly. ErrNotFound covers both a missing set and a missing name.
func (s *Service) GetByName(ctx context.Context, userID int64, name string) (Template, error) {
	var tpl Template
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		tpl, err = s.repo.FindByName(ctx, userID, name)
		return err
	})
	return tpl, err
}
