package view

// Mutation names every write operation that can leave cached views stale.
type Mutation string

// Mutation values.
const (
	MutationCreateTask     Mutation = "create_task"
	MutationAssignTask     Mutation = "assign_task"
	MutationUpdateTask     Mutation = "update_task"
	MutationStartTask      Mutation = "start_task"
	MutationUpdateProgress Mutation = "update_progress"
	MutationSubmitTask     Mutation = "submit_task"
	MutationReviewTask     Mutation = "review_task"
	MutationCancelTask     Mutation = "cancel_task"
	MutationBulkTaskAction Mutation = "bulk_task_action"

	MutationAddComment    Mutation = "add_comment"
	MutationUpdateComment Mutation = "update_comment"
	MutationDeleteComment Mutation = "delete_comment"

	MutationAdvanceVerification Mutation = "advance_verification"
	MutationRejectVerification  Mutation = "reject_verification"
	MutationAssignRole          Mutation = "assign_role"
)

// MutationContext carries the identifiers a mutation's invalidation set
// depends on. Fields irrelevant to a given mutation are ignored.
type MutationContext struct {
	TaskID     int64
	EmployeeID string
	// ActorID is the user performing the mutation: the creating manager
	// for create, the acting employee for start/progress/submit.
	ActorID string
	// AssigneeID is set when a create assigns the task immediately.
	AssigneeID string
}

// Invalidations returns the key prefixes a successful mutation makes
// stale. The table errs coarse: over-invalidation costs a refetch,
// under-invalidation shows stale data. Comment edits return only the
// activity log (or nothing), since the comment list itself is patched in
// place by the caller.
//
// Callers must apply the result only after the mutation succeeds; a
// failed mutation leaves the cache at its last-known-good state.
func Invalidations(m Mutation, ctx MutationContext) []Key {
	switch m {
	case MutationCreateTask:
		keys := []Key{ManagerDashboard(ctx.ActorID), Tasks()}
		if ctx.AssigneeID != "" {
			keys = append(keys, EmployeeScope())
		}
		return keys
	case MutationAssignTask:
		return []Key{TaskDetail(ctx.TaskID), Tasks(), EmployeeScope()}
	case MutationUpdateTask, MutationReviewTask, MutationCancelTask:
		return []Key{TaskDetail(ctx.TaskID), Tasks()}
	case MutationBulkTaskAction:
		return []Key{Tasks()}
	case MutationStartTask, MutationSubmitTask:
		return []Key{TaskDetail(ctx.TaskID), EmployeeDashboard(ctx.ActorID)}
	case MutationUpdateProgress:
		return []Key{TaskDetail(ctx.TaskID), EmployeeDashboard(ctx.ActorID), TaskActivities(ctx.TaskID)}
	case MutationAddComment:
		return []Key{TaskActivities(ctx.TaskID)}
	case MutationUpdateComment, MutationDeleteComment:
		return nil
	case MutationAdvanceVerification, MutationRejectVerification, MutationAssignRole:
		return []Key{EmployeeDetail(ctx.EmployeeID), Employees()}
	default:
		return nil
	}
}
