package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// TaskService drives the task lifecycle. Every successful mutation records
// an activity entry and invalidates the cached views the mutation made
// stale; a failed mutation leaves the cache untouched.
type TaskService struct {
	tasks      TaskSearcher
	activities task.ActivityStore
	cache      *querycache.Cache
	logger     *log.Logger
}

// NewTaskService creates a task service.
func NewTaskService(tasks TaskSearcher, activities task.ActivityStore, cache *querycache.Cache, logger *log.Logger) *TaskService {
	return &TaskService{tasks: tasks, activities: activities, cache: cache, logger: logger}
}

// CreateTaskInput carries the fields for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Type        task.Type
	Priority    task.Priority
	Department  string
	Tags        []string
	DueDate     *time.Time
	CreatedBy   string
	// AssigneeID, when set, assigns the task in the same operation.
	AssigneeID string
}

// CreateTask creates a draft task, optionally assigning it immediately.
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (task.Task, error) {
	if err := requireNonEmpty("title", in.Title); err != nil {
		return task.Task{}, err
	}
	if err := requireNonEmpty("created_by", in.CreatedBy); err != nil {
		return task.Task{}, err
	}

	code, err := task.NewCode()
	if err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}

	t := task.NewTask(code, strings.TrimSpace(in.Title), in.Description, in.Type, in.Priority, in.CreatedBy)
	if in.Department != "" {
		t = t.WithDepartment(in.Department)
	}
	if len(in.Tags) > 0 || in.DueDate != nil {
		t = t.WithDetails(t.Title(), t.Description(), t.Priority(), in.Tags, in.DueDate)
	}
	if in.AssigneeID != "" {
		t, err = t.Assign(in.AssigneeID)
		if err != nil {
			return task.Task{}, fmt.Errorf("create task: %w", err)
		}
	}

	// The task and its first audit entries land in one transaction: a
	// task cannot exist without its creation record.
	entries := []task.Activity{task.NewActivity(0, in.CreatedBy, task.ActionCreated, code)}
	if in.AssigneeID != "" {
		entries = append(entries, task.NewActivity(0, in.CreatedBy, task.ActionAssigned, in.AssigneeID))
	}

	saved, err := s.tasks.SaveWithActivities(ctx, t, entries...)
	if err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.invalidate(view.MutationCreateTask, view.MutationContext{
		TaskID:     saved.ID(),
		ActorID:    in.CreatedBy,
		AssigneeID: in.AssigneeID,
	})
	s.logger.InfoContext(ctx, "task created", "task_id", saved.ID(), "code", saved.Code())
	return saved, nil
}

// GetTask returns one task's detail view, served from the cache when fresh.
func (s *TaskService) GetTask(ctx context.Context, taskID int64) (task.Task, error) {
	return cached(ctx, s.cache, view.TaskDetail(taskID), func(ctx context.Context) (task.Task, error) {
		return s.tasks.FindOne(ctx, store.WithID(taskID))
	})
}

// SearchTasks returns a filtered task page. Logically equal filters hit
// the same cache entry regardless of how their fields were assembled.
func (s *TaskService) SearchTasks(ctx context.Context, f filter.State) (Page[task.Task], error) {
	f = f.Sanitize()
	return cached(ctx, s.cache, view.TaskSearch(f), func(ctx context.Context) (Page[task.Task], error) {
		tasks, total, err := s.tasks.Search(ctx, f)
		if err != nil {
			return Page[task.Task]{}, fmt.Errorf("search tasks: %w", err)
		}
		return Page[task.Task]{Items: tasks, Total: total, Page: f.Page, Limit: f.Limit}, nil
	})
}

// SearchTasksFeed returns the accumulated infinite-scroll feed for a
// filter up to the filter's page. Page position is not part of the cache
// identity: loading the next page extends the existing entry instead of
// addressing a new one.
func (s *TaskService) SearchTasksFeed(ctx context.Context, f filter.State) (Feed[task.Task], error) {
	f = f.Sanitize()
	key := view.TaskInfiniteSearch(f)

	feed, err := cached(ctx, s.cache, key, func(ctx context.Context) (Feed[task.Task], error) {
		return s.fetchFeed(ctx, f, Feed[task.Task]{Limit: f.Limit})
	})
	if err != nil {
		return Feed[task.Task]{}, err
	}

	// A shorter feed cached by an earlier page load gets extended in place.
	if feed.LastPage < f.Page {
		feed, err = s.fetchFeed(ctx, f, feed)
		if err != nil {
			return Feed[task.Task]{}, err
		}
		s.cache.Put(key, feed)
	}
	return feed, nil
}

// fetchFeed loads pages after feed.LastPage up to f.Page and appends them.
func (s *TaskService) fetchFeed(ctx context.Context, f filter.State, feed Feed[task.Task]) (Feed[task.Task], error) {
	for page := feed.LastPage + 1; page <= f.Page; page++ {
		q := f
		q.Page = page
		tasks, total, err := s.tasks.Search(ctx, q)
		if err != nil {
			return Feed[task.Task]{}, fmt.Errorf("search tasks page %d: %w", page, err)
		}
		feed.Items = append(feed.Items, tasks...)
		feed.Total = total
		feed.LastPage = page
		if int64(len(feed.Items)) >= total {
			feed.LastPage = f.Page
			break
		}
	}
	return feed, nil
}

// UpdateTaskInput carries the editable task fields.
type UpdateTaskInput struct {
	Title       string
	Description string
	Priority    task.Priority
	Tags        []string
	DueDate     *time.Time
}

// UpdateTask edits a task's details. The fresh detail is written straight
// into the cache so a follow-up read does not refetch.
func (s *TaskService) UpdateTask(ctx context.Context, taskID int64, actorID string, in UpdateTaskInput) (task.Task, error) {
	if err := requireNonEmpty("title", in.Title); err != nil {
		return task.Task{}, err
	}

	current, err := s.tasks.FindOne(ctx, store.WithID(taskID))
	if err != nil {
		return task.Task{}, fmt.Errorf("update task %d: %w", taskID, err)
	}

	updated := current.WithDetails(strings.TrimSpace(in.Title), in.Description, in.Priority, in.Tags, in.DueDate)
	saved, err := s.tasks.Save(ctx, updated)
	if err != nil {
		return task.Task{}, fmt.Errorf("update task %d: %w", taskID, err)
	}

	s.record(ctx, taskID, actorID, task.ActionUpdated, "")
	s.invalidate(view.MutationUpdateTask, view.MutationContext{TaskID: taskID, ActorID: actorID})
	s.cache.Put(view.TaskDetail(taskID), saved)
	return saved, nil
}

// AssignTask assigns a draft task to an employee.
func (s *TaskService) AssignTask(ctx context.Context, taskID int64, assigneeID, actorID string) (task.Task, error) {
	if err := requireNonEmpty("assignee_id", assigneeID); err != nil {
		return task.Task{}, err
	}
	return s.transition(ctx, taskID, actorID, view.MutationAssignTask, task.ActionAssigned, assigneeID, func(t task.Task) (task.Task, error) {
		return t.Assign(assigneeID)
	})
}

// StartTask moves an assigned task into progress. Only the assignee may
// start their task.
func (s *TaskService) StartTask(ctx context.Context, taskID int64, actorID string) (task.Task, error) {
	return s.transition(ctx, taskID, actorID, view.MutationStartTask, task.ActionStarted, "", func(t task.Task) (task.Task, error) {
		if t.AssigneeID() != actorID {
			return t, fmt.Errorf("%w: task %d is not assigned to %s", ErrForbidden, taskID, actorID)
		}
		return t.Start()
	})
}

// UpdateProgress records the assignee's completion percentage.
func (s *TaskService) UpdateProgress(ctx context.Context, taskID int64, percent int, actorID string) (task.Task, error) {
	detail := fmt.Sprintf("%d%%", percent)
	return s.transition(ctx, taskID, actorID, view.MutationUpdateProgress, task.ActionProgressUpdated, detail, func(t task.Task) (task.Task, error) {
		if t.AssigneeID() != actorID {
			return t, fmt.Errorf("%w: task %d is not assigned to %s", ErrForbidden, taskID, actorID)
		}
		return t.SetProgress(percent)
	})
}

// SubmitTask hands the task over for review.
func (s *TaskService) SubmitTask(ctx context.Context, taskID int64, actorID string) (task.Task, error) {
	return s.transition(ctx, taskID, actorID, view.MutationSubmitTask, task.ActionSubmitted, "", func(t task.Task) (task.Task, error) {
		if t.AssigneeID() != actorID {
			return t, fmt.Errorf("%w: task %d is not assigned to %s", ErrForbidden, taskID, actorID)
		}
		return t.Submit()
	})
}

// ReviewDecision is the outcome of a manager review.
type ReviewDecision string

// ReviewDecision values.
const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// ReviewTask resolves a submitted task: approval completes it, rejection
// sends it back to the assignee with progress reset.
func (s *TaskService) ReviewTask(ctx context.Context, taskID int64, decision ReviewDecision, actorID string) (task.Task, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return task.Task{}, validationError("decision", "must be approve or reject")
	}
	return s.transition(ctx, taskID, actorID, view.MutationReviewTask, task.ActionReviewed, string(decision), func(t task.Task) (task.Task, error) {
		if t.Status() == task.StatusSubmitted {
			var err error
			t, err = t.BeginReview()
			if err != nil {
				return t, err
			}
		}
		if decision == DecisionApprove {
			return t.Approve()
		}
		return t.Reject()
	})
}

// CancelTask cancels a task from any non-terminal state.
func (s *TaskService) CancelTask(ctx context.Context, taskID int64, actorID string) (task.Task, error) {
	return s.transition(ctx, taskID, actorID, view.MutationCancelTask, task.ActionCancelled, "", func(t task.Task) (task.Task, error) {
		return t.Cancel()
	})
}

// BulkCancelResult reports the outcome of a bulk cancellation.
type BulkCancelResult struct {
	Cancelled []int64
	Failed    map[int64]error
}

// BulkCancelTasks cancels a set of tasks, continuing past individual
// failures. Cached task views are invalidated once if anything changed.
func (s *TaskService) BulkCancelTasks(ctx context.Context, taskIDs []int64, actorID string) (BulkCancelResult, error) {
	result := BulkCancelResult{Failed: make(map[int64]error)}
	for _, id := range taskIDs {
		t, err := s.tasks.FindOne(ctx, store.WithID(id))
		if err == nil {
			t, err = t.Cancel()
		}
		if err == nil {
			_, err = s.tasks.Save(ctx, t)
		}
		if err != nil {
			result.Failed[id] = err
			continue
		}
		s.record(ctx, id, actorID, task.ActionCancelled, "bulk")
		result.Cancelled = append(result.Cancelled, id)
	}

	if len(result.Cancelled) > 0 {
		s.invalidate(view.MutationBulkTaskAction, view.MutationContext{ActorID: actorID})
		s.logger.InfoContext(ctx, "bulk cancel", "cancelled", len(result.Cancelled), "failed", len(result.Failed))
	}
	return result, nil
}

// Activities returns a task's activity log, newest first.
func (s *TaskService) Activities(ctx context.Context, taskID int64) ([]task.Activity, error) {
	return cached(ctx, s.cache, view.TaskActivities(taskID), func(ctx context.Context) ([]task.Activity, error) {
		return s.activities.Find(ctx, task.WithTaskID(taskID), task.NewestFirst())
	})
}

// transition loads a task, applies the lifecycle move, saves it, records
// the activity, and invalidates the mutation's view set. The cache is
// only touched after the save succeeds.
func (s *TaskService) transition(
	ctx context.Context,
	taskID int64,
	actorID string,
	mutation view.Mutation,
	action task.Action,
	detail string,
	apply func(task.Task) (task.Task, error),
) (task.Task, error) {
	current, err := s.tasks.FindOne(ctx, store.WithID(taskID))
	if err != nil {
		return task.Task{}, fmt.Errorf("%s task %d: %w", action, taskID, err)
	}

	next, err := apply(current)
	if err != nil {
		return task.Task{}, fmt.Errorf("%s task %d: %w", action, taskID, err)
	}

	saved, err := s.tasks.Save(ctx, next)
	if err != nil {
		return task.Task{}, fmt.Errorf("%s task %d: %w", action, taskID, err)
	}

	s.record(ctx, taskID, actorID, action, detail)
	s.invalidate(mutation, view.MutationContext{TaskID: taskID, ActorID: actorID})
	s.logger.InfoContext(ctx, "task transition", "task_id", taskID, "action", string(action), "status", saved.Status().String())
	return saved, nil
}

// record appends an activity entry. Logging the failure is enough: the
// mutation itself already succeeded.
func (s *TaskService) record(ctx context.Context, taskID int64, actorID string, action task.Action, detail string) {
	if _, err := s.activities.Save(ctx, task.NewActivity(taskID, actorID, action, detail)); err != nil {
		s.logger.WarnContext(ctx, "record activity", "task_id", taskID, "action", string(action), "error", err)
	}
}

func (s *TaskService) invalidate(m view.Mutation, mctx view.MutationContext) {
	s.cache.Invalidate(view.Invalidations(m, mctx)...)
}
