package employee

import (
	"context"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
)

// Store persists employee profiles.
type Store interface {
	Find(ctx context.Context, options ...store.Option) ([]Employee, error)
	FindOne(ctx context.Context, options ...store.Option) (Employee, error)
	Count(ctx context.Context, options ...store.Option) (int64, error)
	Save(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, options ...store.Option) error
}

// WithEmployeeID filters by the "id" column (string employee IDs).
func WithEmployeeID(id string) store.Option {
	return store.WithCondition("id", id)
}

// WithStage filters by the "stage" column.
func WithStage(s VerificationStage) store.Option {
	return store.WithCondition("stage", string(s))
}

// WithDepartment filters by the "department" column.
func WithDepartment(department string) store.Option {
	return store.WithCondition("department", department)
}
