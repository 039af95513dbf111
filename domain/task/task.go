// Package task provides the task domain: entities, lifecycle states, and
// store contracts for the HR work-item workflow.
package task

import (
	"fmt"
	"slices"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// codeAlphabet excludes ambiguous characters (0/O, 1/l/I) so task codes can
// be read aloud and typed from a printed document.
const codeAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// NewCode generates a human-facing task reference code such as "TSK-x7fk2b".
func NewCode() (string, error) {
	id, err := gonanoid.Generate(codeAlphabet, 6)
	if err != nil {
		return "", fmt.Errorf("generate task code: %w", err)
	}
	return "TSK-" + id, nil
}

// Task represents a single HR work item moving through the task lifecycle.
type Task struct {
	id          int64
	code        string
	title       string
	description string
	taskType    Type
	priority    Priority
	status      Status
	assigneeID  string
	department  string
	tags        []string
	progress    int
	dueDate     *time.Time
	createdBy   string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask creates a draft task owned by the given manager.
func NewTask(code, title, description string, taskType Type, priority Priority, createdBy string) Task {
	now := time.Now().UTC()
	return Task{
		code:        code,
		title:       title,
		description: description,
		taskType:    taskType,
		priority:    priority,
		status:      StatusDraft,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructTask creates a Task with all fields (used by stores).
func ReconstructTask(
	id int64,
	code, title, description string,
	taskType Type,
	priority Priority,
	status Status,
	assigneeID, department string,
	tags []string,
	progress int,
	dueDate *time.Time,
	createdBy string,
	createdAt, updatedAt time.Time,
) Task {
	return Task{
		id:          id,
		code:        code,
		title:       title,
		description: description,
		taskType:    taskType,
		priority:    priority,
		status:      status,
		assigneeID:  assigneeID,
		department:  department,
		tags:        slices.Clone(tags),
		progress:    progress,
		dueDate:     dueDate,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the task ID.
func (t Task) ID() int64 { return t.id }

// Code returns the human-facing reference code.
func (t Task) Code() string { return t.code }

// Title returns the task title.
func (t Task) Title() string { return t.title }

// Description returns the task description.
func (t Task) Description() string { return t.description }

// Type returns the task type.
func (t Task) Type() Type { return t.taskType }

// Priority returns the task priority.
func (t Task) Priority() Priority { return t.priority }

// Status returns the lifecycle status.
func (t Task) Status() Status { return t.status }

// AssigneeID returns the assigned employee's ID, or empty if unassigned.
func (t Task) AssigneeID() string { return t.assigneeID }

// Department returns the owning department.
func (t Task) Department() string { return t.department }

// Tags returns a copy of the task tags.
func (t Task) Tags() []string { return slices.Clone(t.tags) }

// Progress returns the completion percentage reported by the assignee.
func (t Task) Progress() int { return t.progress }

// DueDate returns the due date, or nil when none is set.
func (t Task) DueDate() *time.Time { return t.dueDate }

// CreatedBy returns the ID of the manager who created the task.
func (t Task) CreatedBy() string { return t.createdBy }

// CreatedAt returns when the task was created.
func (t Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the task was last updated.
func (t Task) UpdatedAt() time.Time { return t.updatedAt }

// IsOverdue reports whether the task has a due date in the past and is not
// in a terminal state.
func (t Task) IsOverdue(now time.Time) bool {
	return t.dueDate != nil && t.dueDate.Before(now) && !t.status.IsTerminal()
}

// WithID returns a copy of the task with the given ID.
func (t Task) WithID(id int64) Task {
	t.id = id
	return t
}

// WithDetails returns a copy with updated editable fields.
func (t Task) WithDetails(title, description string, priority Priority, tags []string, dueDate *time.Time) Task {
	t.title = title
	t.description = description
	t.priority = priority
	t.tags = slices.Clone(tags)
	t.dueDate = dueDate
	t.updatedAt = time.Now().UTC()
	return t
}

// WithDepartment returns a copy with the department set.
func (t Task) WithDepartment(department string) Task {
	t.department = department
	t.updatedAt = time.Now().UTC()
	return t
}

// ErrInvalidTransition is returned when a lifecycle move is not allowed
// from the task's current status.
type ErrInvalidTransition struct {
	From Status
	To   Status
}

// Error returns the error message.
func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("task: invalid transition %s -> %s", e.From, e.To)
}

// transition moves the task to the given status after checking legality.
func (t Task) transition(next Status) (Task, error) {
	if !t.status.CanTransitionTo(next) {
		return t, ErrInvalidTransition{From: t.status, To: next}
	}
	t.status = next
	t.updatedAt = time.Now().UTC()
	return t, nil
}

// Assign assigns the task to an employee and moves it to ASSIGNED.
func (t Task) Assign(assigneeID string) (Task, error) {
	out, err := t.transition(StatusAssigned)
	if err != nil {
		return t, err
	}
	out.assigneeID = assigneeID
	return out, nil
}

// Start moves the task to IN_PROGRESS.
func (t Task) Start() (Task, error) {
	return t.transition(StatusInProgress)
}

// SetProgress records a completion percentage, clamped to [0, 100].
// The task must be in progress.
func (t Task) SetProgress(percent int) (Task, error) {
	if t.status != StatusInProgress {
		return t, ErrInvalidTransition{From: t.status, To: StatusInProgress}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	t.progress = percent
	t.updatedAt = time.Now().UTC()
	return t, nil
}

// Submit moves the task to SUBMITTED for review.
func (t Task) Submit() (Task, error) {
	out, err := t.transition(StatusSubmitted)
	if err != nil {
		return t, err
	}
	out.progress = 100
	return out, nil
}

// BeginReview moves the task to IN_REVIEW.
func (t Task) BeginReview() (Task, error) {
	return t.transition(StatusInReview)
}

// Approve completes the task.
func (t Task) Approve() (Task, error) {
	return t.transition(StatusCompleted)
}

// Reject sends the task back to the assignee for rework.
func (t Task) Reject() (Task, error) {
	out, err := t.transition(StatusInProgress)
	if err != nil {
		return t, err
	}
	out.progress = 0
	return out, nil
}

// Cancel cancels the task from any non-terminal state.
func (t Task) Cancel() (Task, error) {
	return t.transition(StatusCancelled)
}
