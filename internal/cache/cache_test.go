package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/cache"
	"github.com/schooltech/scheduler-core/internal/domain"
)

func sampleInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Students: []domain.Student{{Id: "s1", Name: "A", Grade: 10}},
		Config:   domain.DefaultScheduleConfig(),
	}
}

func TestKeyIsStableAcrossCalls(t *testing.T) {
	input := sampleInput()

	a, err := cache.Key(input)
	require.NoError(t, err)
	b, err := cache.Key(input)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, a, "schedule:")
}

func TestKeyChangesWithInput(t *testing.T) {
	a, err := cache.Key(sampleInput())
	require.NoError(t, err)

	changed := sampleInput()
	changed.Students[0].Grade = 11
	b, err := cache.Key(changed)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDisabledStoreIsNoOp(t *testing.T) {
	store := cache.New(nil, nil, 0, true)

	assert.False(t, store.Enabled())

	hit, err := store.Get(context.Background(), "schedule:anything", &domain.Schedule{})
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Set(context.Background(), "schedule:anything", &domain.Schedule{}))
	require.NoError(t, store.Invalidate(context.Background(), "schedule:*"))
}
