package task

import "time"

// Comment represents a discussion entry attached to a task.
type Comment struct {
	id        int64
	taskID    int64
	authorID  string
	body      string
	createdAt time.Time
	updatedAt time.Time
}

// NewComment creates a new comment on a task.
func NewComment(taskID int64, authorID, body string) Comment {
	now := time.Now().UTC()
	return Comment{
		taskID:    taskID,
		authorID:  authorID,
		body:      body,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructComment creates a Comment with all fields (used by stores).
func ReconstructComment(id, taskID int64, authorID, body string, createdAt, updatedAt time.Time) Comment {
	return Comment{
		id:        id,
		taskID:    taskID,
		authorID:  authorID,
		body:      body,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the comment ID.
func (c Comment) ID() int64 { return c.id }

// TaskID returns the owning task's ID.
func (c Comment) TaskID() int64 { return c.taskID }

// AuthorID returns the comment author's ID.
func (c Comment) AuthorID() string { return c.authorID }

// Body returns the comment text.
func (c Comment) Body() string { return c.body }

// CreatedAt returns when the comment was created.
func (c Comment) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns when the comment was last edited.
func (c Comment) UpdatedAt() time.Time { return c.updatedAt }

// WithID returns a copy of the comment with the given ID.
func (c Comment) WithID(id int64) Comment {
	c.id = id
	return c
}

// WithBody returns a copy with the body replaced and the edit time bumped.
func (c Comment) WithBody(body string) Comment {
	c.body = body
	c.updatedAt = time.Now().UTC()
	return c
}
