package querycache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
)

func TestCacheGetOrFetchCachesValue(t *testing.T) {
	c := querycache.New()
	ctx := context.Background()
	key := view.TaskDetail(42)

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "task-42", nil
	}

	for i := 0; i < 3; i++ {
		value, err := c.GetOrFetch(ctx, key, fetch)
		require.NoError(t, err)
		assert.Equal(t, "task-42", value)
	}
	assert.Equal(t, 1, calls)

	stats := c.Snapshot()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheGetOrFetchErrorCachesNothing(t *testing.T) {
	c := querycache.New()
	ctx := context.Background()
	key := view.Tasks()

	boom := errors.New("upstream down")
	_, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	value, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
}

func TestCacheGetOrFetchDeduplicatesConcurrentFetches(t *testing.T) {
	c := querycache.New()
	key := view.TaskSearch(filter.Defaults())

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "page-1", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := c.GetOrFetch(context.Background(), key, fetch)
			require.NoError(t, err)
			results[i] = value
		}(i)
	}

	// Give every goroutine a chance to reach the fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	for _, value := range results {
		assert.Equal(t, "page-1", value)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	c := querycache.New(querycache.WithTTL(time.Minute), querycache.WithClock(clock))
	key := view.EmployeeDashboard("emp-1")
	c.Put(key, "stats")

	_, ok := c.Peek(key)
	assert.True(t, ok)

	advance(time.Minute)
	_, ok = c.Peek(key)
	assert.False(t, ok, "entry past its TTL is stale")

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Len())
}

func TestCacheInvalidatePrefixFamilies(t *testing.T) {
	c := querycache.New()

	managerSearch := filter.Defaults()
	managerSearch.Department = "engineering"

	c.Put(view.ManagerDashboard("mgr-1"), "dash")
	c.Put(view.TaskSearch(managerSearch), "results")
	c.Put(view.TaskDetail(7), "detail")
	c.Put(view.EmployeeDashboard("emp-1"), "emp-dash")

	removed := c.Invalidate(view.Tasks())
	assert.Equal(t, 4, removed, "every key extends the tasks root")
	assert.Equal(t, 0, c.Len())
}

func TestCacheInvalidateScopedPrefix(t *testing.T) {
	c := querycache.New()

	c.Put(view.ManagerDashboard("mgr-1"), "dash-1")
	c.Put(view.ManagerDashboard("mgr-2"), "dash-2")
	c.Put(view.TaskDetail(7), "detail")

	removed := c.Invalidate(view.ManagerScope())
	assert.Equal(t, 2, removed)

	_, ok := c.Peek(view.TaskDetail(7))
	assert.True(t, ok, "detail keys survive a manager-scope invalidation")
}

func TestCacheInvalidateRequiresSegmentBoundary(t *testing.T) {
	c := querycache.New()

	c.Put(view.NewKey("tasks", "detail", "42"), "detail")
	c.Put(view.NewKey("tasks", "detailed-report"), "report")

	removed := c.Invalidate(view.NewKey("tasks", "detail"))
	assert.Equal(t, 1, removed)

	_, ok := c.Peek(view.NewKey("tasks", "detailed-report"))
	assert.True(t, ok)
}

func TestCacheInvalidateMissingPrefixIsNoOp(t *testing.T) {
	c := querycache.New()
	c.Put(view.TaskDetail(1), "detail")

	assert.Equal(t, 0, c.Invalidate(view.TaskDetail(99)))
	assert.Equal(t, 1, c.Len())
}

func TestCacheUpdateEditsInPlace(t *testing.T) {
	c := querycache.New()
	key := view.TaskComments(5)
	c.Put(key, []string{"first"})

	ok := c.Update(key, func(current any) any {
		return append(current.([]string), "second")
	})
	assert.True(t, ok)

	value, present := c.Peek(key)
	require.True(t, present)
	assert.Equal(t, []string{"first", "second"}, value)
}

func TestCacheUpdateMissingEntry(t *testing.T) {
	c := querycache.New()

	called := false
	ok := c.Update(view.TaskComments(5), func(current any) any {
		called = true
		return current
	})
	assert.False(t, ok)
	assert.False(t, called)
}

func TestCacheSearchKeysShareScopePrefix(t *testing.T) {
	c := querycache.New()

	f := filter.Defaults()
	f.Page = 2
	c.Put(view.TaskSearch(f), "page-2")
	c.Put(view.TaskInfiniteSearch(f), "all-pages")
	c.Put(view.ManagerDashboard("mgr-1"), "dash")

	removed := c.Invalidate(view.NewKey("tasks", "search"))
	assert.Equal(t, 2, removed)

	_, ok := c.Peek(view.ManagerDashboard("mgr-1"))
	assert.True(t, ok)
}
