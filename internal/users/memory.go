package users

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used for unit tests and as a
// development fallback when MongoDB is unavailable.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.store[u.ID.Hex()] = &cp
	return u.ID.Hex(), nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*User, 0, len(m.store))
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*User, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, upd Update) (*User, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) (*User, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	return u, nil
}

func (m *MemoryRepository) FindByName(ctx context.Context, name string) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*User{}
	for _, u := range m.store {
		if u.Name == name {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}
