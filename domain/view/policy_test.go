package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
)

func searchFixture() filter.State {
	s := filter.Defaults()
	s.Department = "engineering"
	return s
}

// covers reports whether any invalidated prefix makes the given key stale.
func covers(invalidated []view.Key, key view.Key) bool {
	for _, prefix := range invalidated {
		if key.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

func TestInvalidationsAssignTask(t *testing.T) {
	keys := view.Invalidations(view.MutationAssignTask, view.MutationContext{TaskID: 7})

	assert.True(t, covers(keys, view.TaskDetail(7)))
	assert.True(t, covers(keys, view.EmployeeDashboard("u9")), "every employee-scoped key goes stale")
	assert.True(t, covers(keys, view.ManagerDashboard("m1")), "coarse tasks prefix covers manager views")
}

func TestInvalidationsCreateTask(t *testing.T) {
	t.Run("unassigned", func(t *testing.T) {
		keys := view.Invalidations(view.MutationCreateTask, view.MutationContext{ActorID: "mgr-1"})
		assert.True(t, covers(keys, view.ManagerDashboard("mgr-1")))
		assert.True(t, covers(keys, view.TaskSearch(searchFixture())))
	})

	t.Run("assigned at creation adds the employee scope", func(t *testing.T) {
		keys := view.Invalidations(view.MutationCreateTask, view.MutationContext{ActorID: "mgr-1", AssigneeID: "emp-2"})
		assert.True(t, covers(keys, view.EmployeeDashboard("emp-2")))
	})
}

func TestInvalidationsProgressUpdate(t *testing.T) {
	keys := view.Invalidations(view.MutationUpdateProgress, view.MutationContext{TaskID: 3, ActorID: "emp-5"})

	assert.True(t, covers(keys, view.TaskDetail(3)))
	assert.True(t, covers(keys, view.TaskActivities(3)))
	assert.True(t, covers(keys, view.EmployeeDashboard("emp-5")))
	assert.False(t, covers(keys, view.ManagerDashboard("mgr-1")), "progress updates do not touch manager views")
}

func TestInvalidationsCommentEdits(t *testing.T) {
	add := view.Invalidations(view.MutationAddComment, view.MutationContext{TaskID: 4})
	require.Len(t, add, 1)
	assert.True(t, add[0].Equal(view.TaskActivities(4)))
	assert.False(t, covers(add, view.TaskComments(4)), "the comment list is patched in place, not refetched")

	assert.Empty(t, view.Invalidations(view.MutationUpdateComment, view.MutationContext{TaskID: 4}))
	assert.Empty(t, view.Invalidations(view.MutationDeleteComment, view.MutationContext{TaskID: 4}))
}

func TestInvalidationsBulkAction(t *testing.T) {
	keys := view.Invalidations(view.MutationBulkTaskAction, view.MutationContext{})
	require.Len(t, keys, 1)
	assert.True(t, keys[0].Equal(view.Tasks()))
}

func TestInvalidationsVerification(t *testing.T) {
	keys := view.Invalidations(view.MutationAdvanceVerification, view.MutationContext{EmployeeID: "emp-8"})
	assert.True(t, covers(keys, view.EmployeeDetail("emp-8")))
	assert.True(t, covers(keys, view.EmployeeSearch(searchFixture())))
	assert.False(t, covers(keys, view.Tasks()))
}

func TestInvalidationsUnknownMutation(t *testing.T) {
	assert.Empty(t, view.Invalidations(view.Mutation("repaint"), view.MutationContext{}))
}
