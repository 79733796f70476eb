package templates

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSet() []Template {
	return []Template{
		{"templateName": "standard", "material": "steel", "rate": 12.5},
		{"templateName": "premium", "material": "aluminum", "rate": 20.0},
	}
}

func TestSeedOnce(t *testing.T) {
	svc := NewService(NewMemoryRepository(defaultSet()))
	ctx := context.Background()

	first, err := svc.GetAllForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, first.Templates, 2)
	assert.Equal(t, int64(7), first.UserID)
	assert.Equal(t, "standard", first.Templates[0].Name())
	assert.Equal(t, "premium", first.Templates[1].Name())
	// seeded copies carry fresh ids, not the defaults' ids
	assert.NotNil(t, first.Templates[0]["_id"])

	// second sequential call returns the same set unchanged
	second, err := svc.GetAllForUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Templates, 2)
	for i := range first.Templates {
		assert.Equal(t, first.Templates[i]["_id"], second.Templates[i]["_id"])
	}
}

func TestAppendOnly(t *testing.T) {
	svc := NewService(NewMemoryRepository(defaultSet()))
	ctx := context.Background()

	before, err := svc.GetAllForUser(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Append(ctx, 1, Template{"templateName": "custom", "rate": 3})
	require.NoError(t, err)

	after, err := svc.GetAllForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, after.Templates, len(before.Templates)+1)
	// every previously present template is unchanged, in order
	for i, tpl := range before.Templates {
		assert.Equal(t, tpl, after.Templates[i])
	}
	added := after.Templates[len(after.Templates)-1]
	assert.Equal(t, "custom", added.Name())
	assert.NotNil(t, added["_id"])
}

func TestAppendCreatesSetWhenAbsent(t *testing.T) {
	svc := NewService(NewMemoryRepository(defaultSet()))
	ctx := context.Background()

	set, err := svc.Append(ctx, 42, Template{"templateName": "solo"})
	require.NoError(t, err)
	require.Len(t, set.Templates, 1)
	assert.Equal(t, "solo", set.Templates[0].Name())
}

func TestAppendRejectsNamelessTemplate(t *testing.T) {
	svc := NewService(NewMemoryRepository(nil))
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	_, err = svc.Append(ctx, 1, Template{"material": "steel"})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	_, err = svc.Append(ctx, 1, Template{"templateName": 5})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestGetByNameExactMatch(t *testing.T) {
	svc := NewService(NewMemoryRepository(defaultSet()))
	ctx := context.Background()

	_, err := svc.GetAllForUser(ctx, 3)
	require.NoError(t, err)

	tpl, err := svc.GetByName(ctx, 3, "standard")
	require.NoError(t, err)
	assert.Equal(t, "standard", tpl.Name())
	assert.Equal(t, "steel", tpl["material"])

	// case-sensitive
	_, err = svc.GetByName(ctx, 3, "Standard")
	assert.ErrorIs(t, err, ErrNotFound)

	// unknown name
	_, err = svc.GetByName(ctx, 3, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// unknown user: same not-found signal
	_, err = svc.GetByName(ctx, 99, "standard")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentFirstAccessSeedsExactlyOnce(t *testing.T) {
	repo := NewMemoryRepository(defaultSet())
	svc := NewService(repo)
	ctx := context.Background()

	const n = 16
	sets := make([]*TemplateSet, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sets[i], errs[i] = svc.GetAllForUser(ctx, 5)
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}

	// every caller observed the same single persisted set
	for i := 1; i < n; i++ {
		assert.Equal(t, sets[0].ID, sets[i].ID)
		assert.Len(t, sets[i].Templates, 2)
	}
	stored, err := repo.GetByUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, sets[0].ID, stored.ID)
}
