package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// CommentStore implements task.CommentStore using GORM.
type CommentStore struct {
	database.Repository[task.Comment, CommentModel]
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db database.Database) CommentStore {
	return CommentStore{
		Repository: database.NewRepository[task.Comment, CommentModel](db, CommentMapper{}, "comment"),
	}
}

// Save creates or updates a comment and returns it with its ID populated.
func (s CommentStore) Save(ctx context.Context, c task.Comment) (task.Comment, error) {
	model := s.Mapper().ToModel(c)
	model.UpdatedAt = time.Now().UTC()

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return task.Comment{}, fmt.Errorf("save comment: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes comments matching the given options.
func (s CommentStore) Delete(ctx context.Context, options ...store.Option) error {
	return s.DeleteBy(ctx, options...)
}

// ActivityStore implements task.ActivityStore using GORM.
type ActivityStore struct {
	database.Repository[task.Activity, ActivityModel]
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db database.Database) ActivityStore {
	return ActivityStore{
		Repository: database.NewRepository[task.Activity, ActivityModel](db, ActivityMapper{}, "activity"),
	}
}

// Save records an activity entry. Activities are append-only.
func (s ActivityStore) Save(ctx context.Context, a task.Activity) (task.Activity, error) {
	model := s.Mapper().ToModel(a)

	if result := s.DB(ctx).Create(&model); result.Error != nil {
		return task.Activity{}, fmt.Errorf("save activity: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
