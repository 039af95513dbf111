package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/persistence"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/testdb"
)

func saveTask(t *testing.T, s persistence.TaskStore, title string, mutate func(task.Task) task.Task) task.Task {
	t.Helper()
	code, err := task.NewCode()
	require.NoError(t, err)

	tk := task.NewTask(code, title, "", task.TypeGeneral, task.PriorityMedium, "mgr-1")
	if mutate != nil {
		tk = mutate(tk)
	}
	saved, err := s.Save(context.Background(), tk)
	require.NoError(t, err)
	return saved
}

func TestTaskStoreSaveAndFindOne(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)
	ctx := context.Background()

	saved := saveTask(t, s, "Prepare onboarding pack", nil)
	assert.NotZero(t, saved.ID())
	assert.Equal(t, task.StatusDraft, saved.Status())

	found, err := s.FindOne(ctx, task.WithCode(saved.Code()))
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), found.ID())
	assert.Equal(t, "Prepare onboarding pack", found.Title())
}

func TestTaskStoreFindOneNotFound(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	_, err := s.FindOne(context.Background(), task.WithCode("TSK-absent"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestTaskStoreSearchByStatusAndAssignee(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	assigned := saveTask(t, s, "Compliance training", func(tk task.Task) task.Task {
		out, err := tk.Assign("emp-1")
		require.NoError(t, err)
		return out
	})
	saveTask(t, s, "Draft handbook", nil)

	f := filter.Defaults()
	f.Statuses = []task.Status{task.StatusAssigned}
	f.Assignees = []string{"emp-1"}

	tasks, total, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, assigned.ID(), tasks[0].ID())
}

func TestTaskStoreSearchFreeText(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	saveTask(t, s, "Quarterly payroll audit", nil)
	saveTask(t, s, "Update security badges", nil)

	f := filter.Defaults()
	f.Search = "payroll"

	tasks, total, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Contains(t, tasks[0].Title(), "payroll")
}

func TestTaskStoreSearchTags(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	tagged := saveTask(t, s, "Office move", func(tk task.Task) task.Task {
		return tk.WithDetails(tk.Title(), "", tk.Priority(), []string{"facilities", "q3"}, nil)
	})
	saveTask(t, s, "Unrelated", nil)

	f := filter.Defaults()
	f.Tags = []string{"q3"}

	tasks, total, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, tagged.ID(), tasks[0].ID())
}

func TestTaskStoreSearchDueRange(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	inRange := saveTask(t, s, "Renew contracts", func(tk task.Task) task.Task {
		return tk.WithDetails(tk.Title(), "", tk.Priority(), nil, &due)
	})
	saveTask(t, s, "No due date", nil)

	f := filter.Defaults()
	f.DueFrom, _ = filter.ParseDate("2026-09-01")
	f.DueTo, _ = filter.ParseDate("2026-09-30")

	tasks, total, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, inRange.ID(), tasks[0].ID())
}

func TestTaskStoreSearchPagination(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	for i := 0; i < 5; i++ {
		saveTask(t, s, "Task", nil)
	}

	f := filter.Defaults()
	f.Limit = 2
	f.Page = 3

	tasks, total, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, tasks, 1, "last page holds the remainder")
}

func TestTaskStoreSearchPrioritySort(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)

	saveTask(t, s, "Low", func(tk task.Task) task.Task {
		code, _ := task.NewCode()
		return task.NewTask(code, "Low", "", task.TypeGeneral, task.PriorityLow, "mgr-1")
	})
	saveTask(t, s, "Urgent", func(tk task.Task) task.Task {
		code, _ := task.NewCode()
		return task.NewTask(code, "Urgent", "", task.TypeGeneral, task.PriorityUrgent, "mgr-1")
	})

	f := filter.Defaults()
	f.Sort = filter.SortPriority
	f.Order = filter.OrderDesc

	tasks, _, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, task.PriorityUrgent, tasks[0].Priority())
}

func TestCommentStoreRoundTrip(t *testing.T) {
	db := testdb.New(t)
	tasks := persistence.NewTaskStore(db)
	comments := persistence.NewCommentStore(db)
	ctx := context.Background()

	owner := saveTask(t, tasks, "Discussion host", nil)

	saved, err := comments.Save(ctx, task.NewComment(owner.ID(), "emp-2", "first"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	edited, err := comments.Save(ctx, saved.WithBody("edited"))
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), edited.ID())

	list, err := comments.Find(ctx, task.WithTaskID(owner.ID()))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Body())

	require.NoError(t, comments.Delete(ctx, task.WithTaskID(owner.ID())))
	list, err = comments.Find(ctx, task.WithTaskID(owner.ID()))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestActivityStoreAppendsAndOrders(t *testing.T) {
	db := testdb.New(t)
	activities := persistence.NewActivityStore(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	entries := []task.Activity{
		task.ReconstructActivity("a1", 1, "mgr-1", task.ActionCreated, "", base),
		task.ReconstructActivity("a2", 1, "emp-1", task.ActionStarted, "", base.Add(time.Minute)),
		task.ReconstructActivity("a3", 2, "mgr-1", task.ActionCreated, "", base.Add(2*time.Minute)),
	}
	for _, entry := range entries {
		_, err := activities.Save(ctx, entry)
		require.NoError(t, err)
	}

	list, err := activities.Find(ctx, task.WithTaskID(1), task.NewestFirst())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, task.ActionStarted, list[0].Action())
}

func TestTaskStoreSaveWithActivitiesStampsTaskID(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)
	activities := persistence.NewActivityStore(db)
	ctx := context.Background()

	code, err := task.NewCode()
	require.NoError(t, err)
	tk := task.NewTask(code, "Compliance training", "", task.TypeGeneral, task.PriorityMedium, "mgr-1")

	saved, err := s.SaveWithActivities(ctx, tk,
		task.NewActivity(0, "mgr-1", task.ActionCreated, code),
		task.NewActivity(0, "mgr-1", task.ActionAssigned, "emp-1"),
	)
	require.NoError(t, err)
	require.NotZero(t, saved.ID())

	entries, err := activities.Find(ctx, task.WithTaskID(saved.ID()))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, saved.ID(), entry.TaskID())
	}
}

func TestTaskStoreSaveWithActivitiesRollsBackTogether(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewTaskStore(db)
	ctx := context.Background()

	code, err := task.NewCode()
	require.NoError(t, err)
	tk := task.NewTask(code, "Compliance training", "", task.TypeGeneral, task.PriorityMedium, "mgr-1")

	// Duplicate activity IDs violate the primary key, failing the second
	// insert after the task row was written.
	now := time.Now().UTC()
	dup := "11111111-1111-1111-1111-111111111111"
	_, err = s.SaveWithActivities(ctx, tk,
		task.ReconstructActivity(dup, 0, "mgr-1", task.ActionCreated, code, now),
		task.ReconstructActivity(dup, 0, "mgr-1", task.ActionAssigned, "emp-1", now),
	)
	require.Error(t, err)

	_, err = s.FindOne(ctx, task.WithCode(code))
	assert.ErrorIs(t, err, database.ErrNotFound, "the task row rolled back with the failed activity")
}
