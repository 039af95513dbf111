package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

func TestManagerDashboardCountsByStatus(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	createTask(t, svc, service.CreateTaskInput{Title: "Draft one"})
	createTask(t, svc, service.CreateTaskInput{Title: "Assigned one", AssigneeID: "emp-1"})
	createTask(t, svc, service.CreateTaskInput{Title: "Other manager's", CreatedBy: "mgr-2"})

	stats, err := svc.Dashboards.ManagerDashboard(ctx, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[task.StatusDraft])
	assert.Equal(t, int64(1), stats.ByStatus[task.StatusAssigned])
	assert.Zero(t, stats.CompletionRate)
}

func TestManagerDashboardCompletionRate(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	done := createTask(t, svc, service.CreateTaskInput{Title: "Done", AssigneeID: "emp-1"})
	createTask(t, svc, service.CreateTaskInput{Title: "Still open", AssigneeID: "emp-1"})

	_, err := svc.Tasks.StartTask(ctx, done.ID(), "emp-1")
	require.NoError(t, err)
	_, err = svc.Tasks.SubmitTask(ctx, done.ID(), "emp-1")
	require.NoError(t, err)
	_, err = svc.Tasks.ReviewTask(ctx, done.ID(), service.DecisionApprove, "mgr-1")
	require.NoError(t, err)

	stats, err := svc.Dashboards.ManagerDashboard(ctx, "mgr-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, stats.CompletionRate, 1e-9)
}

func TestEmployeeDashboardCountsOverdue(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-48 * time.Hour)
	createTask(t, svc, service.CreateTaskInput{Title: "Late", AssigneeID: "emp-1", DueDate: &past})
	createTask(t, svc, service.CreateTaskInput{Title: "No due date", AssigneeID: "emp-1"})

	stats, err := svc.Dashboards.EmployeeDashboard(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Overdue)
}

func TestDashboardStalesOnTaskMutation(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	created := createTask(t, svc, service.CreateTaskInput{AssigneeID: "emp-1"})

	before, err := svc.Dashboards.EmployeeDashboard(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), before.ByStatus[task.StatusAssigned])

	_, err = svc.Tasks.StartTask(ctx, created.ID(), "emp-1")
	require.NoError(t, err)

	after, err := svc.Dashboards.EmployeeDashboard(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.ByStatus[task.StatusInProgress])
	assert.Zero(t, after.ByStatus[task.StatusAssigned])
}
