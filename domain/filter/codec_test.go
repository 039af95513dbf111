package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, s filter.State)
	}{
		{
			name:  "empty query yields defaults",
			query: "",
			check: func(t *testing.T, s filter.State) {
				assert.True(t, s.Equal(filter.Defaults()))
			},
		},
		{
			name:  "full query",
			query: "search=audit&status=ASSIGNED,IN_PROGRESS&priority=HIGH&department=hr&tags=q1,urgent&page=3&limit=50&sort=due_date&order=asc&view=board",
			check: func(t *testing.T, s filter.State) {
				assert.Equal(t, "audit", s.Search)
				assert.Equal(t, []task.Status{task.StatusAssigned, task.StatusInProgress}, s.Statuses)
				assert.Equal(t, []task.Priority{task.PriorityHigh}, s.Priorities)
				assert.Equal(t, "hr", s.Department)
				assert.Equal(t, []string{"q1", "urgent"}, s.Tags)
				assert.Equal(t, 3, s.Page)
				assert.Equal(t, 50, s.Limit)
				assert.Equal(t, filter.SortDueDate, s.Sort)
				assert.Equal(t, filter.OrderAsc, s.Order)
				assert.Equal(t, filter.ViewBoard, s.View)
			},
		},
		{
			name:  "unknown enum tokens are dropped silently",
			query: "status=ASSIGNED,NOT_A_STATUS,COMPLETED&priority=EXTREME",
			check: func(t *testing.T, s filter.State) {
				assert.Equal(t, []task.Status{task.StatusAssigned, task.StatusCompleted}, s.Statuses)
				assert.Nil(t, s.Priorities)
			},
		},
		{
			name:  "non-numeric pagination falls back to defaults",
			query: "page=abc&limit=much",
			check: func(t *testing.T, s filter.State) {
				assert.Equal(t, 1, s.Page)
				assert.Equal(t, 20, s.Limit)
			},
		},
		{
			name:  "out of range pagination clamps",
			query: "page=0&limit=9999",
			check: func(t *testing.T, s filter.State) {
				assert.Equal(t, 1, s.Page)
				assert.Equal(t, 100, s.Limit)
			},
		},
		{
			name:  "malformed dates are ignored",
			query: "due_from=March+1st&due_to=2026-03-05",
			check: func(t *testing.T, s filter.State) {
				assert.True(t, s.DueFrom.IsZero())
				assert.Equal(t, "2026-03-05", s.DueTo.String())
			},
		},
		{
			name:  "inverted range in the URL drops both bounds",
			query: "created_from=2026-06-10&created_to=2026-06-01",
			check: func(t *testing.T, s filter.State) {
				assert.True(t, s.CreatedFrom.IsZero())
				assert.True(t, s.CreatedTo.IsZero())
			},
		},
		{
			name:  "unknown parameters are ignored",
			query: "utm_source=mail&status=SUBMITTED",
			check: func(t *testing.T, s filter.State) {
				assert.Equal(t, []task.Status{task.StatusSubmitted}, s.Statuses)
			},
		},
		{
			name:  "unparseable query string degrades to defaults",
			query: "%zz;;;",
			check: func(t *testing.T, s filter.State) {
				assert.True(t, s.Equal(filter.Defaults()))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, filter.Parse(tt.query))
		})
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	assert.Equal(t, "", filter.Defaults().Encode())

	s := filter.Defaults()
	s.Statuses = []task.Status{task.StatusInReview}
	s.Page = 2
	assert.Equal(t, "page=2&status=IN_REVIEW", s.Encode())
}

func TestParseEncodeRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"search=q3+review&status=IN_PROGRESS,SUBMITTED&priority=HIGH,URGENT",
		"department=engineering&tags=onboarding&view=grid&page=4",
		"due_from=2026-02-01&due_to=2026-02-28&sort=priority&order=asc&limit=100",
		"assignee=emp-17,emp-42&type=COMPLIANCE",
	}
	for _, q := range queries {
		t.Run("q="+q, func(t *testing.T) {
			first := filter.Parse(q)
			second := filter.Parse(first.Encode())
			assert.True(t, first.Equal(second), "round trip changed state: %q vs %q", first.Encode(), second.Encode())
		})
	}
}
