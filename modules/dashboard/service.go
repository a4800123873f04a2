package dashboard

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taskboard/modules/cache"
	task "github.com/example/taskboard/modules/task"
	"golang.org/x/sync/singleflight"
)

// collectionKey is the stable cache key for a user's task collection.
func collectionKey(ownerID string) string {
	return "tasks:" + ownerID
}

// Service maintains the cached task collection and computes derived views.
// Mutations elsewhere invalidate the collection key; this service always
// refetches rather than patching the cached value locally.
type Service struct {
	tasks   task.TaskPort
	cache   *cache.Cache
	sfGroup singleflight.Group // coalesces concurrent loads per owner
}

// NewService creates a new dashboard service.
func NewService(tasks task.TaskPort, c *cache.Cache) *Service {
	return &Service{
		tasks: tasks,
		cache: c,
	}
}

// Collection returns the full task collection for ownerID, serving from
// the cache when possible. Concurrent misses for the same owner share a
// single fetch.
func (s *Service) Collection(ctx context.Context, ownerID string) ([]task.TaskData, bool, error) {
	key := collectionKey(ownerID)

	var cached []task.TaskData
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Serve from the source of truth on cache errors.
		log.Printf("[dashboard] Cache error for %s: %v", key, err)
	}
	if found {
		return cached, true, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		tasks, err := s.tasks.ListTasks(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, key, tasks); err != nil {
			log.Printf("[dashboard] Failed to cache %s: %v", key, err)
		}
		return tasks, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load task collection: %w", err)
	}

	tasks, ok := val.([]task.TaskData)
	if !ok {
		return nil, false, fmt.Errorf("unexpected collection type %T", val)
	}

	return tasks, false, nil
}

// Snapshot returns the derived view for ownerID: the filtered tasks plus
// counters computed from the full collection.
func (s *Service) Snapshot(ctx context.Context, ownerID string, criteria Criteria) (SnapshotResponse, error) {
	tasks, _, err := s.Collection(ctx, ownerID)
	if err != nil {
		return SnapshotResponse{}, err
	}

	stats := ComputeStats(tasks)
	return SnapshotResponse{
		Tasks:     Filter(tasks, criteria),
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
	}, nil
}

// Invalidate drops the cached collection for ownerID, forcing the next
// snapshot to refetch.
func (s *Service) Invalidate(ctx context.Context, ownerID string) error {
	return s.cache.Invalidate(ctx, collectionKey(ownerID))
}
