package task

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of event recorded in a task's activity log.
type Action string

// Action values.
const (
	ActionCreated         Action = "created"
	ActionAssigned        Action = "assigned"
	ActionStarted         Action = "started"
	ActionProgressUpdated Action = "progress_updated"
	ActionSubmitted       Action = "submitted"
	ActionReviewed        Action = "reviewed"
	ActionUpdated         Action = "updated"
	ActionCancelled       Action = "cancelled"
	ActionCommented       Action = "commented"
)

// Activity is an immutable audit-log entry for a task.
type Activity struct {
	id        string
	taskID    int64
	actorID   string
	action    Action
	detail    string
	createdAt time.Time
}

// NewActivity creates an activity entry with a fresh ID.
func NewActivity(taskID int64, actorID string, action Action, detail string) Activity {
	return Activity{
		id:        uuid.NewString(),
		taskID:    taskID,
		actorID:   actorID,
		action:    action,
		detail:    detail,
		createdAt: time.Now().UTC(),
	}
}

// ReconstructActivity creates an Activity with all fields (used by stores).
func ReconstructActivity(id string, taskID int64, actorID string, action Action, detail string, createdAt time.Time) Activity {
	return Activity{
		id:        id,
		taskID:    taskID,
		actorID:   actorID,
		action:    action,
		detail:    detail,
		createdAt: createdAt,
	}
}

// ID returns the activity ID.
func (a Activity) ID() string { return a.id }

// TaskID returns the owning task's ID.
func (a Activity) TaskID() int64 { return a.taskID }

// ActorID returns the ID of the user who performed the action.
func (a Activity) ActorID() string { return a.actorID }

// Action returns the recorded action.
func (a Activity) Action() Action { return a.action }

// Detail returns the free-form detail message.
func (a Activity) Detail() string { return a.detail }

// CreatedAt returns when the activity was recorded.
func (a Activity) CreatedAt() time.Time { return a.createdAt }
