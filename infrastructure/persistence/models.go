// Package persistence provides database storage implementations.
package persistence

import "time"

// TaskModel is the GORM model for tasks.
type TaskModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Code        string `gorm:"uniqueIndex;size:16"`
	Title       string `gorm:"size:200"`
	Description string
	Type        string `gorm:"index;size:32"`
	Priority    string `gorm:"index;size:16"`
	Status      string `gorm:"index;size:32"`
	AssigneeID  string `gorm:"index;size:64"`
	Department  string `gorm:"index;size:64"`
	Tags        string // JSON-encoded string array
	Progress    int
	DueDate     *time.Time `gorm:"index"`
	CreatedBy   string     `gorm:"index;size:64"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for tasks.
func (TaskModel) TableName() string { return "tasks" }

// CommentModel is the GORM model for task comments.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	TaskID    int64  `gorm:"index"`
	AuthorID  string `gorm:"size:64"`
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for task comments.
func (CommentModel) TableName() string { return "task_comments" }

// ActivityModel is the GORM model for task activity-log entries.
type ActivityModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	TaskID    int64  `gorm:"index"`
	ActorID   string `gorm:"size:64"`
	Action    string `gorm:"size:32"`
	Detail    string
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for task activities.
func (ActivityModel) TableName() string { return "task_activities" }

// EmployeeModel is the GORM model for employee profiles.
type EmployeeModel struct {
	ID         string `gorm:"primaryKey;size:64"`
	Name       string `gorm:"size:200"`
	Email      string `gorm:"uniqueIndex;size:200"`
	Department string `gorm:"index;size:64"`
	Role       string `gorm:"size:64"`
	Stage      string `gorm:"index;size:40"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for employees.
func (EmployeeModel) TableName() string { return "employees" }

// PresetDocumentModel is the GORM model for saved filter presets. All
// presets live in one JSON document under a fixed key, read and written
// whole.
type PresetDocumentModel struct {
	Key       string `gorm:"primaryKey;size:64"`
	Document  string
	UpdatedAt time.Time
}

// TableName returns the table name for preset documents.
func (PresetDocumentModel) TableName() string { return "filter_presets" }
