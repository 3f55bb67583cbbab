package tasks

import (
	"context"
	"fmt"
	"strings"

	"farmhub/store"

	"go.uber.org/zap"
)

// The tasks container's primary-name field is fixed by the workspace layout.
const taskNameFieldKey = "Name"

// listCacheKey is the single slot of the list-level cache.
const listCacheKey = "task-list"

// ConfigError reports a required external identifier that is not configured.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configError: %s is not set", e.Key)
}

// CommentService resolves comment counts for task names, memoized so
// repeated schedule renders do not hammer the store.
type CommentService interface {
	CountsForTasks(ctx context.Context, names []string) (map[string]int, error)
	ListTaskNames(ctx context.Context) ([]string, error)
	InvalidateTask(name string)
	InvalidateAll()
}

// DefaultCommentService implements CommentService against the tasks
// container.
type DefaultCommentService struct {
	Store            store.Client
	TasksContainerID string
	Logger           *zap.Logger

	listCache   *TTLCache[[]string]
	detailCache *TTLCache[int]
}

var _ CommentService = (*DefaultCommentService)(nil)

func NewCommentService(client store.Client, tasksContainerID string, logger *zap.Logger) *DefaultCommentService {
	return &DefaultCommentService{
		Store:            client,
		TasksContainerID: tasksContainerID,
		Logger:           logger,
		listCache:        NewTTLCache[[]string](ListCacheTTL),
		detailCache:      NewTTLCache[int](DetailCacheTTL),
	}
}

// CountsForTasks returns the comment count per task name. Unknown names
// count zero. Lookups run sequentially to respect the store's request
// budget.
func (s *DefaultCommentService) CountsForTasks(ctx context.Context, names []string) (map[string]int, error) {
	if s.TasksContainerID == "" {
		return nil, &ConfigError{Key: "TASKS_CONTAINER_ID"}
	}

	counts := make(map[string]int, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if cached, ok := s.detailCache.Get(trimmed); ok {
			counts[name] = cached
			continue
		}

		row, err := s.findTaskRowByName(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		if row == nil {
			counts[name] = 0
			continue
		}

		count, err := s.Store.RetrieveComments(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		s.detailCache.Set(trimmed, count)
		counts[name] = count
	}
	return counts, nil
}

// ListTaskNames returns every task name in the tasks container, memoized
// through the list-level cache.
func (s *DefaultCommentService) ListTaskNames(ctx context.Context) ([]string, error) {
	if s.TasksContainerID == "" {
		return nil, &ConfigError{Key: "TASKS_CONTAINER_ID"}
	}
	if cached, ok := s.listCache.Get(listCacheKey); ok {
		return cached, nil
	}

	rows, err := s.Store.QueryAllContainerRows(ctx, s.TasksContainerID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name := row.Fields[taskNameFieldKey].PlainText(); name != "" {
			names = append(names, name)
		}
	}
	s.listCache.Set(listCacheKey, names)
	return names, nil
}

// InvalidateTask drops one task's cached detail, e.g. after a comment is
// posted.
func (s *DefaultCommentService) InvalidateTask(name string) {
	s.detailCache.Clear(name)
}

// InvalidateAll drops both caches.
func (s *DefaultCommentService) InvalidateAll() {
	s.listCache.ClearAll()
	s.detailCache.ClearAll()
}

func (s *DefaultCommentService) findTaskRowByName(ctx context.Context, name string) (*store.Row, error) {
	rows, err := s.Store.QueryContainer(ctx, s.TasksContainerID, store.Query{
		TitleFilterField:  taskNameFieldKey,
		TitleFilterEquals: name,
		PageSize:          1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
