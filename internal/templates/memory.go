package templates

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used for unit tests and as a
// development fallback when MongoDB is unavailable.
type MemoryRepository struct {
	mu       sync.RWMutex
	store    map[int64]*TemplateSet
	defaults []Template
}

// NewMemoryRepository creates the repository; defaults is the seed source and may be empty.
func NewMemoryRepository(defaults []Template) *MemoryRepository {
	return &MemoryRepository{store: make(map[int64]*TemplateSet), defaults: defaults}
}

func copySet(s *TemplateSet) *TemplateSet {
	cp := *s
	cp.Templates = append([]Template{}, s.Templates...)
	return &cp
}

func (m *MemoryRepository) GetByUser(ctx context.Context, userID int64) (*TemplateSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copySet(set), nil
}

func (m *MemoryRepository) SeedIfAbsent(ctx context.Context, userID int64, seed []Template) (*TemplateSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.store[userID]; ok {
		return copySet(set), nil
	}
	now := time.Now().UTC()
	set := &TemplateSet{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Templates: append([]Template{}, seed...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.store[userID] = set
	return copySet(set), nil
}

func (m *MemoryRepository) Append(ctx context.Context, userID int64, tpl Template) (*TemplateSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	set, ok := m.store[userID]
	if !ok {
		set = &TemplateSet{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: now}
		m.store[userID] = set
	}
	set.Templates = append(set.Templates, tpl)
	set.UpdatedAt = now
	return copySet(set), nil
}

func (m *MemoryRepository) FindByName(ctx context.Context, userID int64, name string) (Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, t := range set.Templates {
		if t.Name() == name {
			// hand out a copy, like every other read path
			cp := make(Template, len(t))
			for k, v := range t {
				cp[k] = v
			}
			return cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) Defaults(ctx context.Context) ([]Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Template{}, m.defaults...), nil
}
