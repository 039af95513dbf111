// Package service implements the application layer: task lifecycle,
// comments, employee verification, saved filter presets, and dashboard
// aggregation. Reads go through the query cache; writes hit the stores
// and then invalidate or patch the affected cached views.
package service

import (
	"context"
	"fmt"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// TaskSearcher extends the task store with filter-driven search.
type TaskSearcher interface {
	task.Store
	// Search returns the page of tasks matching the filter plus the total
	// match count before pagination.
	Search(ctx context.Context, f filter.State) ([]task.Task, int64, error)
}

// EmployeeSearcher extends the employee store with filter-driven search.
type EmployeeSearcher interface {
	employee.Store
	Search(ctx context.Context, f filter.State) ([]employee.Employee, int64, error)
}

// Page is one page of results plus enough metadata to render pagination.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// TotalPages returns the number of pages the total spans.
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(p.Total) / p.Limit
	if int(p.Total)%p.Limit != 0 {
		pages++
	}
	return pages
}

// HasMore reports whether pages beyond this one exist.
func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages()
}

// Feed is the accumulated result of an infinite-scroll search: every page
// loaded so far for one filter, in order.
type Feed[T any] struct {
	Items    []T
	Total    int64
	LastPage int
	Limit    int
}

// HasMore reports whether another page can be loaded.
func (f Feed[T]) HasMore() bool {
	return int64(len(f.Items)) < f.Total
}

// Services bundles every application service over one shared cache.
type Services struct {
	Tasks      *TaskService
	Comments   *CommentService
	Employees  *EmployeeService
	Presets    *PresetService
	Dashboards *DashboardService
}

// NewServices wires the application services against the given stores and
// query cache.
func NewServices(
	tasks TaskSearcher,
	comments task.CommentStore,
	activities task.ActivityStore,
	employees EmployeeSearcher,
	presets filter.PresetStore,
	cache *querycache.Cache,
	logger *log.Logger,
) *Services {
	return &Services{
		Tasks:      NewTaskService(tasks, activities, cache, logger),
		Comments:   NewCommentService(tasks, comments, activities, cache, logger),
		Employees:  NewEmployeeService(employees, cache, logger),
		Presets:    NewPresetService(presets, logger),
		Dashboards: NewDashboardService(tasks, cache, logger),
	}
}

// cached fetches a typed value through the query cache.
func cached[T any](ctx context.Context, cache *querycache.Cache, key view.Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, value, zero)
	}
	return typed, nil
}
