package task

import (
	"context"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
)

// Store persists tasks. Filter-driven search is a separate, consumer-side
// contract so this package stays independent of the filter vocabulary.
type Store interface {
	// Find retrieves tasks matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Task, error)
	// FindOne retrieves a single task matching the given options.
	FindOne(ctx context.Context, options ...store.Option) (Task, error)
	// Count returns the number of tasks matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)
	// Save inserts or updates a task and returns it with its ID populated.
	Save(ctx context.Context, t Task) (Task, error)
	// SaveWithActivities persists a task and its activity-log entries
	// atomically, stamping the saved task's ID onto each entry.
	SaveWithActivities(ctx context.Context, t Task, entries ...Activity) (Task, error)
	// Delete removes tasks matching the given options.
	Delete(ctx context.Context, options ...store.Option) error
}

// CommentStore persists task comments.
type CommentStore interface {
	Find(ctx context.Context, options ...store.Option) ([]Comment, error)
	FindOne(ctx context.Context, options ...store.Option) (Comment, error)
	Save(ctx context.Context, c Comment) (Comment, error)
	Delete(ctx context.Context, options ...store.Option) error
}

// ActivityStore persists task activity-log entries.
type ActivityStore interface {
	Find(ctx context.Context, options ...store.Option) ([]Activity, error)
	Save(ctx context.Context, a Activity) (Activity, error)
}
