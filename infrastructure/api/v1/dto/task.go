// Package dto defines the request and response shapes for the v1 API.
package dto

import "time"

// TaskAttributes carries one task's fields.
type TaskAttributes struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	Department  string     `json:"department,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Progress    int        `json:"progress"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskData is one task resource.
type TaskData struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes TaskAttributes `json:"attributes"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Data TaskData `json:"data"`
}

// TaskListResponse wraps a task page.
type TaskListResponse struct {
	Data  []TaskData     `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Links map[string]any `json:"links,omitempty"`
}

// TaskCreateRequest is the body for POST /tasks.
type TaskCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Department  string   `json:"department,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	CreatedBy   string   `json:"created_by"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
}

// TaskUpdateRequest is the body for PATCH /tasks/{id}.
type TaskUpdateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	ActorID     string   `json:"actor_id"`
}

// TaskActionRequest is the body for lifecycle endpoints (assign, start,
// submit, cancel).
type TaskActionRequest struct {
	ActorID    string `json:"actor_id"`
	AssigneeID string `json:"assignee_id,omitempty"`
}

// TaskProgressRequest is the body for POST /tasks/{id}/progress.
type TaskProgressRequest struct {
	ActorID  string `json:"actor_id"`
	Progress int    `json:"progress"`
}

// TaskReviewRequest is the body for POST /tasks/{id}/review.
type TaskReviewRequest struct {
	ActorID  string `json:"actor_id"`
	Decision string `json:"decision"`
}

// TaskBulkCancelRequest is the body for POST /tasks/bulk/cancel.
type TaskBulkCancelRequest struct {
	ActorID string  `json:"actor_id"`
	TaskIDs []int64 `json:"task_ids"`
}

// TaskBulkCancelResponse reports per-task bulk outcomes.
type TaskBulkCancelResponse struct {
	Cancelled []int64          `json:"cancelled"`
	Failed    map[int64]string `json:"failed,omitempty"`
}

// ActivityAttributes carries one activity-log entry.
type ActivityAttributes struct {
	TaskID    int64     `json:"task_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityData is one activity resource.
type ActivityData struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes ActivityAttributes `json:"attributes"`
}

// ActivityListResponse wraps an activity log.
type ActivityListResponse struct {
	Data []ActivityData `json:"data"`
}

// CommentAttributes carries one comment.
type CommentAttributes struct {
	TaskID    int64     `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentData is one comment resource.
type CommentData struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes CommentAttributes `json:"attributes"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Data CommentData `json:"data"`
}

// CommentListResponse wraps a comment list.
type CommentListResponse struct {
	Data []CommentData `json:"data"`
}

// CommentRequest is the body for posting or editing a comment.
type CommentRequest struct {
	AuthorID string `json:"author_id"`
	Body     string `json:"body"`
}
