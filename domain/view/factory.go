package view

import (
	"net/url"
	"strconv"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
)

// Root and segment vocabulary. Keys are assembled only through the
// constructors below so every call site produces the same shape.
const (
	segTasks      = "tasks"
	segEmployees  = "employees"
	segManager    = "manager"
	segEmployee   = "employee"
	segDashboard  = "dashboard"
	segSearch     = "search"
	segInfinite   = "infinite"
	segDetail     = "detail"
	segActivities = "activities"
	segComments   = "comments"
)

// Tasks returns the coarse prefix covering every task-scoped key.
func Tasks() Key {
	return NewKey(segTasks)
}

// ManagerScope returns the prefix covering manager-scoped task keys.
func ManagerScope() Key {
	return NewKey(segTasks, segManager)
}

// EmployeeScope returns the prefix covering employee-scoped task keys.
func EmployeeScope() Key {
	return NewKey(segTasks, segEmployee)
}

// ManagerDashboard identifies a manager's task dashboard.
func ManagerDashboard(userID string) Key {
	return NewKey(segTasks, segManager, segDashboard, idSegment(userID))
}

// EmployeeDashboard identifies an employee's own task dashboard.
func EmployeeDashboard(userID string) Key {
	return NewKey(segTasks, segEmployee, segDashboard, idSegment(userID))
}

// TaskSearch identifies a paginated task list for one filter state. The
// qualifier is the canonical query encoding, so logically equal filters
// address the same entry no matter how their fields were assembled.
func TaskSearch(f filter.State) Key {
	return NewKey(segTasks, segSearch, f.Encode())
}

// TaskInfiniteSearch identifies an infinite-scroll task list for one
// filter state. Page position is not part of the identity: every loaded
// page belongs to the same entry.
func TaskInfiniteSearch(f filter.State) Key {
	qualifier := f
	qualifier.Page = filter.DefaultPage
	return NewKey(segTasks, segSearch, segInfinite, qualifier.Encode())
}

// TaskDetail identifies one task's detail view.
func TaskDetail(taskID int64) Key {
	return NewKey(segTasks, segDetail, strconv.FormatInt(taskID, 10))
}

// TaskActivities identifies one task's activity log.
func TaskActivities(taskID int64) Key {
	return TaskDetail(taskID).Append(segActivities)
}

// TaskComments identifies one task's comment list.
func TaskComments(taskID int64) Key {
	return TaskDetail(taskID).Append(segComments)
}

// Employees returns the coarse prefix covering every employee-scoped key.
func Employees() Key {
	return NewKey(segEmployees)
}

// EmployeeSearch identifies a paginated employee list for one filter
// state.
func EmployeeSearch(f filter.State) Key {
	return NewKey(segEmployees, segSearch, f.Encode())
}

// EmployeeDetail identifies one employee's profile view.
func EmployeeDetail(employeeID string) Key {
	return NewKey(segEmployees, segDetail, idSegment(employeeID))
}

// idSegment escapes a caller-supplied identifier so it occupies exactly
// one segment. Without this, an ID containing the separator would alias
// a deeper key and match prefixes it does not belong under.
func idSegment(id string) string {
	return url.PathEscape(id)
}
