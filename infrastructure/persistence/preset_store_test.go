package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/persistence"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/testdb"
)

func TestPresetStoreRoundTrip(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewPresetStore(db)
	ctx := context.Background()

	state := filter.Defaults()
	state.Statuses = []task.Status{task.StatusInProgress}
	state.Department = "engineering"

	saved, err := s.Save(ctx, filter.NewPreset("p1", "Eng in progress", state))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Eng in progress", list[0].Name)
	assert.True(t, list[0].State.Equal(saved.State))
}

func TestPresetStoreSameNameReplaces(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewPresetStore(db)
	ctx := context.Background()

	first := filter.Defaults()
	first.Department = "hr"
	_, err := s.Save(ctx, filter.NewPreset("p1", "My view", first))
	require.NoError(t, err)

	second := filter.Defaults()
	second.Department = "legal"
	_, err = s.Save(ctx, filter.NewPreset("p2", "My view", second))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "legal", list[0].State.Department)
}

func TestPresetStoreDelete(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewPresetStore(db)
	ctx := context.Background()

	_, err := s.Save(ctx, filter.NewPreset("p1", "One", filter.Defaults()))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "p1"))
	require.NoError(t, s.Delete(ctx, "p1"), "deleting a missing preset is a no-op")

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmployeeStoreSearch(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewEmployeeStore(db)
	ctx := context.Background()

	_, err := s.Save(ctx, employee.NewEmployee("emp-1", "Amara Okafor", "amara@corp.test", "engineering"))
	require.NoError(t, err)
	_, err = s.Save(ctx, employee.NewEmployee("emp-2", "Brian Kim", "brian@corp.test", "finance"))
	require.NoError(t, err)

	f := filter.Defaults()
	f.Department = "engineering"

	employees, total, err := s.Search(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, employees, 1)
	assert.Equal(t, "emp-1", employees[0].ID())

	f = filter.Defaults()
	f.Search = "kim"
	employees, _, err = s.Search(ctx, f)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "emp-2", employees[0].ID())
}

func TestEmployeeStoreStageTransitions(t *testing.T) {
	db := testdb.New(t)
	s := persistence.NewEmployeeStore(db)
	ctx := context.Background()

	e, err := s.Save(ctx, employee.NewEmployee("emp-3", "Dana Ortiz", "dana@corp.test", "people-ops"))
	require.NoError(t, err)
	assert.Equal(t, employee.StageNotStarted, e.Stage())

	advanced, err := e.Advance()
	require.NoError(t, err)
	saved, err := s.Save(ctx, advanced)
	require.NoError(t, err)

	found, err := s.FindOne(ctx, employee.WithEmployeeID("emp-3"))
	require.NoError(t, err)
	assert.Equal(t, saved.Stage(), found.Stage())
	assert.Equal(t, employee.StagePendingDetailsReview, found.Stage())
}
