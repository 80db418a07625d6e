package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryService_SetGet(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	require.NoError(t, svc.Set(ctx, "skybook:a", item{Name: "a", Count: 2}, time.Minute))

	var got item
	require.NoError(t, svc.Get(ctx, "skybook:a", &got))
	assert.Equal(t, item{Name: "a", Count: 2}, got)
	assert.True(t, svc.Exists(ctx, "skybook:a"))

	err := svc.Get(ctx, "skybook:missing", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryService_Expiry(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService().(*memoryService)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	assert.ErrorIs(t, svc.Get(ctx, "k", &v), ErrCacheMiss)
	assert.False(t, svc.Exists(ctx, "k"))
}

func TestMemoryService_ExpiredEntriesAreRemoved(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService().(*memoryService)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, svc.Set(ctx, fmt.Sprintf("skybook:session:%d", i), i, time.Minute))
	}
	require.NoError(t, svc.Set(ctx, "skybook:flights:list:public", 1, 0))
	assert.Len(t, svc.entries, 1001)

	now = now.Add(time.Hour)

	// A read drops the expired entry it finds
	var v int
	assert.ErrorIs(t, svc.Get(ctx, "skybook:session:0", &v), ErrCacheMiss)
	assert.Len(t, svc.entries, 1000)

	// The next write sweeps everything else that expired
	require.NoError(t, svc.Set(ctx, "skybook:session:new", 1, time.Minute))
	assert.Len(t, svc.entries, 2)
	assert.True(t, svc.Exists(ctx, "skybook:flights:list:public"))
	assert.True(t, svc.Exists(ctx, "skybook:session:new"))
}

func TestMemoryService_SweepIsRateLimited(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService().(*memoryService)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Set(ctx, "a", 1, time.Second))
	now = now.Add(2 * time.Second)

	// Within the interval of the first sweep nothing is walked
	require.NoError(t, svc.Set(ctx, "b", 1, time.Second))
	assert.Len(t, svc.entries, 2)

	now = now.Add(sweepInterval)
	require.NoError(t, svc.Set(ctx, "c", 1, time.Second))
	assert.Len(t, svc.entries, 1)
}

func TestMemoryService_DeletePattern(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	require.NoError(t, svc.Set(ctx, "skybook:wizard:s1:passengers", 1, 0))
	require.NoError(t, svc.Set(ctx, "skybook:wizard:s1:searchData", 1, 0))
	require.NoError(t, svc.Set(ctx, "skybook:wizard:s2:passengers", 1, 0))

	require.NoError(t, svc.DeletePattern(ctx, "skybook:wizard:s1:*"))

	assert.False(t, svc.Exists(ctx, "skybook:wizard:s1:passengers"))
	assert.False(t, svc.Exists(ctx, "skybook:wizard:s1:searchData"))
	assert.True(t, svc.Exists(ctx, "skybook:wizard:s2:passengers"))
}

func TestMemoryService_GetOrSet(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []item{{Name: "x"}}, nil
	}

	var first, second []item
	require.NoError(t, svc.GetOrSet(ctx, "list", time.Minute, fetch, &first))
	require.NoError(t, svc.GetOrSet(ctx, "list", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	boom := errors.New("boom")
	err := svc.GetOrSet(ctx, "other", time.Minute, func() (interface{}, error) { return nil, boom }, &first)
	assert.ErrorIs(t, err, boom)
}
