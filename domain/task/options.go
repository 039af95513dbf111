package task

import "github.com/Kimutai-cloud/HRMS-sub002/domain/store"

// WithCode filters by the "code" column.
func WithCode(code string) store.Option {
	return store.WithCondition("code", code)
}

// WithStatus filters by the "status" column.
func WithStatus(s Status) store.Option {
	return store.WithCondition("status", string(s))
}

// WithStatusIn filters by the "status" column using IN.
func WithStatusIn(statuses []Status) store.Option {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return store.WithConditionIn("status", values)
}

// WithAssignee filters by the "assignee_id" column.
func WithAssignee(employeeID string) store.Option {
	return store.WithCondition("assignee_id", employeeID)
}

// WithCreatedBy filters by the "created_by" column.
func WithCreatedBy(userID string) store.Option {
	return store.WithCondition("created_by", userID)
}

// WithDepartment filters by the "department" column.
func WithDepartment(department string) store.Option {
	return store.WithCondition("department", department)
}

// WithTaskID filters comments and activities by the "task_id" column.
func WithTaskID(taskID int64) store.Option {
	return store.WithCondition("task_id", taskID)
}

// NewestFirst orders by creation time, newest first.
func NewestFirst() store.Option {
	return store.WithOrderDesc("created_at")
}
