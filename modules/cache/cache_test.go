package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Requires Redis running on localhost:6379; tests skip otherwise.
const testRedisAddr = "localhost:6379"

// setupTestCache creates a cache instance for testing.
// Returns the cache and a cleanup function.
func setupTestCache(t *testing.T, prefix string) (*Cache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	cleanupKeys(ctx, client, prefix+"*")

	c := New(client, prefix, 5*time.Minute)

	cleanup := func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	}

	return c, cleanup
}

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestNew(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	defer client.Close()

	c := New(client, "test:", 10*time.Minute)

	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.prefix != "test:" {
		t.Errorf("prefix = %q, want %q", c.prefix, "test:")
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want %v", c.ttl, 10*time.Minute)
	}
	if c.stats == nil {
		t.Error("stats is nil")
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:setget:")
	defer cleanup()

	ctx := context.Background()

	type taskView struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}

	testCases := []struct {
		name  string
		key   string
		value []taskView
	}{
		{
			name: "single task",
			key:  "tasks:user-1",
			value: []taskView{
				{ID: "t1", Title: "Buy groceries", Completed: false},
			},
		},
		{
			name: "mixed collection",
			key:  "tasks:user-2",
			value: []taskView{
				{ID: "t2", Title: "Morning run", Completed: true},
				{ID: "t3", Title: "Write report", Completed: false},
			},
		},
		{
			name:  "empty collection",
			key:   "tasks:user-3",
			value: []taskView{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := c.Set(ctx, tc.key, tc.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			var result []taskView
			found, err := c.Get(ctx, tc.key, &result)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found {
				t.Fatal("Get() returned found = false, want true")
			}

			if len(result) != len(tc.value) {
				t.Fatalf("len(result) = %d, want %d", len(result), len(tc.value))
			}
			for i := range result {
				if result[i] != tc.value[i] {
					t.Errorf("result[%d] = %+v, want %+v", i, result[i], tc.value[i])
				}
			}
		})
	}
}

func TestCache_GetMiss(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:miss:")
	defer cleanup()

	ctx := context.Background()

	var result string
	found, err := c.Get(ctx, "nonexistent", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() returned found = true for nonexistent key, want false")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:invalidate:")
	defer cleanup()

	ctx := context.Background()

	if err := c.Set(ctx, "tasks:user-1", "some value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var result string
	found, _ := c.Get(ctx, "tasks:user-1", &result)
	if !found {
		t.Fatal("Key should exist before invalidation")
	}

	if err := c.Invalidate(ctx, "tasks:user-1"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	found, _ = c.Get(ctx, "tasks:user-1", &result)
	if found {
		t.Error("Key should not exist after invalidation")
	}
}

func TestCache_InvalidateMissingKey(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:invalidate-missing:")
	defer cleanup()

	// DEL on an absent key is a no-op, not an error.
	if err := c.Invalidate(context.Background(), "never-set"); err != nil {
		t.Errorf("Invalidate() on missing key error = %v", err)
	}
}

func TestCache_Stats(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:stats:")
	defer cleanup()

	ctx := context.Background()

	c.Set(ctx, "stats-test", "value")

	var result string
	c.Get(ctx, "stats-test", &result)
	c.Get(ctx, "nonexistent", &result)
	c.Get(ctx, "stats-test", &result)
	c.Invalidate(ctx, "stats-test")

	stats := c.GetStats()

	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Invalidations != 1 {
		t.Errorf("Invalidations = %d, want 1", stats.Invalidations)
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, want 0", stats.Errors)
	}

	// 2 hits out of 3 gets
	expectedHitRate := float64(2) / float64(3) * 100
	if stats.HitRate < expectedHitRate-0.01 || stats.HitRate > expectedHitRate+0.01 {
		t.Errorf("HitRate = %f, want ~%f", stats.HitRate, expectedHitRate)
	}
}

func TestCache_KeyPrefix(t *testing.T) {
	c, cleanup := setupTestCache(t, "myprefix:")
	defer cleanup()

	ctx := context.Background()

	if err := c.Set(ctx, "mykey", "myvalue"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Verify the key is stored with prefix using the underlying client.
	result, err := c.client.Get(ctx, "myprefix:mykey").Result()
	if err != nil {
		t.Fatalf("Direct Redis Get error = %v", err)
	}
	if result != `"myvalue"` { // JSON encoded string
		t.Errorf("Stored value = %q, want %q", result, `"myvalue"`)
	}
}

func TestCache_Ping(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:ping:")
	defer cleanup()

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
