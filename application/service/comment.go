package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// CommentService manages task discussions. Comment mutations patch the
// cached comment list in place instead of invalidating it: the caller
// already knows the exact post-mutation list, so a refetch would only
// repeat work.
type CommentService struct {
	tasks      TaskSearcher
	comments   task.CommentStore
	activities task.ActivityStore
	cache      *querycache.Cache
	logger     *log.Logger
}

// NewCommentService creates a comment service.
func NewCommentService(tasks TaskSearcher, comments task.CommentStore, activities task.ActivityStore, cache *querycache.Cache, logger *log.Logger) *CommentService {
	return &CommentService{tasks: tasks, comments: comments, activities: activities, cache: cache, logger: logger}
}

// ListComments returns a task's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, taskID int64) ([]task.Comment, error) {
	return cached(ctx, s.cache, view.TaskComments(taskID), func(ctx context.Context) ([]task.Comment, error) {
		return s.comments.Find(ctx, task.WithTaskID(taskID), store.WithOrderAsc("created_at"))
	})
}

// AddComment posts a comment on a task. The cached comment list gains the
// new entry in place; only the activity log is invalidated. The list is
// ordered by created_at ascending, so the newest comment is appended at
// the end rather than prepended.
func (s *CommentService) AddComment(ctx context.Context, taskID int64, authorID, body string) (task.Comment, error) {
	if err := requireNonEmpty("body", body); err != nil {
		return task.Comment{}, err
	}
	if _, err := s.tasks.FindOne(ctx, store.WithID(taskID)); err != nil {
		return task.Comment{}, fmt.Errorf("add comment: task %d: %w", taskID, err)
	}

	saved, err := s.comments.Save(ctx, task.NewComment(taskID, authorID, body))
	if err != nil {
		return task.Comment{}, fmt.Errorf("add comment: %w", err)
	}

	if _, err := s.activities.Save(ctx, task.NewActivity(taskID, authorID, task.ActionCommented, "")); err != nil {
		s.logger.WarnContext(ctx, "record comment activity", "task_id", taskID, "error", err)
	}

	s.cache.Update(view.TaskComments(taskID), func(current any) any {
		list, ok := current.([]task.Comment)
		if !ok {
			return current
		}
		return append(slices.Clone(list), saved)
	})
	s.cache.Invalidate(view.Invalidations(view.MutationAddComment, view.MutationContext{TaskID: taskID})...)
	return saved, nil
}

// UpdateComment edits a comment's body. Only the author may edit. No view
// is invalidated: the cached list is patched in place.
func (s *CommentService) UpdateComment(ctx context.Context, commentID int64, authorID, body string) (task.Comment, error) {
	if err := requireNonEmpty("body", body); err != nil {
		return task.Comment{}, err
	}

	current, err := s.comments.FindOne(ctx, store.WithID(commentID))
	if err != nil {
		return task.Comment{}, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	if current.AuthorID() != authorID {
		return task.Comment{}, fmt.Errorf("%w: comment %d belongs to another author", ErrForbidden, commentID)
	}

	saved, err := s.comments.Save(ctx, current.WithBody(body))
	if err != nil {
		return task.Comment{}, fmt.Errorf("update comment %d: %w", commentID, err)
	}

	s.cache.Update(view.TaskComments(saved.TaskID()), func(cur any) any {
		list, ok := cur.([]task.Comment)
		if !ok {
			return cur
		}
		out := slices.Clone(list)
		for i, c := range out {
			if c.ID() == saved.ID() {
				out[i] = saved
			}
		}
		return out
	})
	return saved, nil
}

// DeleteComment removes a comment. Only the author may delete. The cached
// list drops the entry in place; no view is invalidated.
func (s *CommentService) DeleteComment(ctx context.Context, commentID int64, authorID string) error {
	current, err := s.comments.FindOne(ctx, store.WithID(commentID))
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	if current.AuthorID() != authorID {
		return fmt.Errorf("%w: comment %d belongs to another author", ErrForbidden, commentID)
	}

	if err := s.comments.Delete(ctx, store.WithID(commentID)); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	s.cache.Update(view.TaskComments(current.TaskID()), func(cur any) any {
		list, ok := cur.([]task.Comment)
		if !ok {
			return cur
		}
		return slices.DeleteFunc(slices.Clone(list), func(c task.Comment) bool {
			return c.ID() == commentID
		})
	})
	return nil
}
