package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// TaskStore implements task.Store using GORM, plus filter-driven search.
type TaskStore struct {
	database.Repository[task.Task, TaskModel]
	db database.Database
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db database.Database) TaskStore {
	return TaskStore{
		Repository: database.NewRepository[task.Task, TaskModel](db, TaskMapper{}, "task"),
		db:         db,
	}
}

// Save creates or updates a task and returns it with its ID populated.
func (s TaskStore) Save(ctx context.Context, t task.Task) (task.Task, error) {
	model := s.Mapper().ToModel(t)
	model.UpdatedAt = time.Now().UTC()

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return task.Task{}, fmt.Errorf("save task: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// SaveWithActivities persists a task and its activity-log entries in one
// transaction, stamping the saved task's ID onto each entry. A failure
// rolls everything back, so a task cannot exist without its audit trail.
func (s TaskStore) SaveWithActivities(ctx context.Context, t task.Task, entries ...task.Activity) (task.Task, error) {
	model := s.Mapper().ToModel(t)
	model.UpdatedAt = time.Now().UTC()

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if result := tx.Save(&model); result.Error != nil {
			return fmt.Errorf("save task: %w", result.Error)
		}
		for _, entry := range entries {
			activity := ActivityMapper{}.ToModel(entry)
			activity.TaskID = model.ID
			if result := tx.Create(&activity); result.Error != nil {
				return fmt.Errorf("save %s activity: %w", entry.Action(), result.Error)
			}
		}
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes tasks matching the given options.
func (s TaskStore) Delete(ctx context.Context, options ...store.Option) error {
	return s.DeleteBy(ctx, options...)
}

// Search retrieves the page of tasks selected by the filter state,
// together with the total match count before pagination.
func (s TaskStore) Search(ctx context.Context, f filter.State) ([]task.Task, int64, error) {
	f = f.Sanitize()

	base := applyTaskFilter(s.DB(ctx).Model(&TaskModel{}), f)

	var total int64
	if result := base.Count(&total); result.Error != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", result.Error)
	}

	var models []TaskModel
	page := base.
		Order(taskOrderClause(f)).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit)
	if result := page.Find(&models); result.Error != nil {
		return nil, 0, fmt.Errorf("search tasks: %w", result.Error)
	}

	tasks := make([]task.Task, len(models))
	for i, m := range models {
		tasks[i] = s.Mapper().ToDomain(m)
	}
	return tasks, total, nil
}

// applyTaskFilter translates a filter state to WHERE clauses.
func applyTaskFilter(db *gorm.DB, f filter.State) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ? OR code LIKE ?", pattern, pattern, pattern)
	}
	if len(f.Statuses) > 0 {
		db = db.Where("status IN ?", enumStrings(f.Statuses))
	}
	if len(f.Priorities) > 0 {
		db = db.Where("priority IN ?", enumStrings(f.Priorities))
	}
	if len(f.Types) > 0 {
		db = db.Where("type IN ?", enumStrings(f.Types))
	}
	if len(f.Assignees) > 0 {
		db = db.Where("assignee_id IN ?", f.Assignees)
	}
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	// Tags are stored as a JSON array string; match each tag as a quoted
	// substring.
	for _, tag := range f.Tags {
		db = db.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	if !f.DueFrom.IsZero() {
		db = db.Where("due_date >= ?", f.DueFrom.Time())
	}
	if !f.DueTo.IsZero() {
		db = db.Where("due_date < ?", f.DueTo.Time().AddDate(0, 0, 1))
	}
	if !f.CreatedFrom.IsZero() {
		db = db.Where("created_at >= ?", f.CreatedFrom.Time())
	}
	if !f.CreatedTo.IsZero() {
		db = db.Where("created_at < ?", f.CreatedTo.Time().AddDate(0, 0, 1))
	}
	return db
}

// taskOrderClause maps the filter's sort configuration to an ORDER BY
// clause. Priority sorts by severity, not alphabetically.
func taskOrderClause(f filter.State) string {
	dir := "DESC"
	if f.Order == filter.OrderAsc {
		dir = "ASC"
	}

	switch f.Sort {
	case filter.SortPriority:
		return fmt.Sprintf(
			"CASE priority WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END %s, created_at DESC",
			dir,
		)
	case filter.SortDueDate:
		// NULL due dates sort last regardless of direction.
		return fmt.Sprintf("due_date IS NULL, due_date %s", dir)
	case filter.SortTitle, filter.SortStatus, filter.SortUpdatedAt:
		return fmt.Sprintf("%s %s", f.Sort, dir)
	default:
		return fmt.Sprintf("created_at %s", dir)
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
