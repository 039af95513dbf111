package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hrms "github.com/Kimutai-cloud/HRMS-sub002"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1/dto"
)

func newTestClient(t *testing.T) *hrms.Client {
	t.Helper()
	tmpDir := t.TempDir()
	client, err := hrms.New(
		hrms.WithSQLite(filepath.Join(tmpDir, "test.db")),
		hrms.WithDataDir(tmpDir),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestServer(t *testing.T, apiKeys []string) http.Handler {
	t.Helper()
	return api.NewAPIServer(newTestClient(t), apiKeys).Handler()
}

func do(t *testing.T, handler http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func createTaskViaAPI(t *testing.T, handler http.Handler, body dto.TaskCreateRequest) dto.TaskResponse {
	t.Helper()
	if body.Title == "" {
		body.Title = "Prepare onboarding pack"
	}
	if body.CreatedBy == "" {
		body.CreatedBy = "mgr-1"
	}
	w := do(t, handler, http.MethodPost, "/api/v1/tasks", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestTaskCreateAndGet(t *testing.T) {
	handler := newTestServer(t, nil)

	created := createTaskViaAPI(t, handler, dto.TaskCreateRequest{
		Title:      "Compliance training",
		Type:       "COMPLIANCE",
		Priority:   "HIGH",
		Department: "engineering",
	})
	assert.Equal(t, "task", created.Data.Type)
	assert.Equal(t, "COMPLIANCE", created.Data.Attributes.Type)
	assert.Equal(t, "DRAFT", created.Data.Attributes.Status)

	w := do(t, handler, http.MethodGet, "/api/v1/tasks/"+created.Data.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Compliance training", got.Data.Attributes.Title)
}

func TestTaskGetUnknownIsNotFound(t *testing.T) {
	handler := newTestServer(t, nil)

	w := do(t, handler, http.MethodGet, "/api/v1/tasks/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskSearchWithFilterQuery(t *testing.T) {
	handler := newTestServer(t, nil)

	createTaskViaAPI(t, handler, dto.TaskCreateRequest{Title: "Engineering audit", Department: "engineering"})
	createTaskViaAPI(t, handler, dto.TaskCreateRequest{Title: "Finance audit", Department: "finance"})

	w := do(t, handler, http.MethodGet, "/api/v1/tasks?department=engineering", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TaskListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Engineering audit", resp.Data[0].Attributes.Title)
	assert.EqualValues(t, 1, resp.Meta["total_count"])
}

func TestTaskFeedAccumulates(t *testing.T) {
	handler := newTestServer(t, nil)

	for _, title := range []string{"One", "Two", "Three"} {
		createTaskViaAPI(t, handler, dto.TaskCreateRequest{Title: title})
	}

	w := do(t, handler, http.MethodGet, "/api/v1/tasks/feed?limit=2&page=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TaskListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Data, 3, "the feed carries every page loaded so far")
	assert.Equal(t, false, resp.Meta["has_more"])
}

func TestTaskSearchMalformedQueryDegradesToDefaults(t *testing.T) {
	handler := newTestServer(t, nil)

	createTaskViaAPI(t, handler, dto.TaskCreateRequest{})

	w := do(t, handler, http.MethodGet, "/api/v1/tasks?status=BOGUS&page=xyz&limit=9999", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TaskListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1, "unknown tokens are dropped, not fatal")
	assert.EqualValues(t, 100, resp.Meta["limit"], "limit clamps to its maximum")
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	handler := newTestServer(t, nil)

	created := createTaskViaAPI(t, handler, dto.TaskCreateRequest{AssigneeID: "emp-1"})
	base := "/api/v1/tasks/" + created.Data.ID

	w := do(t, handler, http.MethodPost, base+"/start", dto.TaskActionRequest{ActorID: "emp-1"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, handler, http.MethodPost, base+"/progress", dto.TaskProgressRequest{ActorID: "emp-1", Progress: 80}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, base+"/submit", dto.TaskActionRequest{ActorID: "emp-1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, base+"/review", dto.TaskReviewRequest{ActorID: "mgr-1", Decision: "approve"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reviewed dto.TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reviewed))
	assert.Equal(t, "COMPLETED", reviewed.Data.Attributes.Status)

	w = do(t, handler, http.MethodGet, base+"/activities", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activities dto.ActivityListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&activities))
	assert.GreaterOrEqual(t, len(activities.Data), 5)
}

func TestIllegalTransitionIsConflict(t *testing.T) {
	handler := newTestServer(t, nil)

	created := createTaskViaAPI(t, handler, dto.TaskCreateRequest{})

	w := do(t, handler, http.MethodPost, "/api/v1/tasks/"+created.Data.ID+"/submit", dto.TaskActionRequest{ActorID: "emp-1"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCommentRoundTripOverHTTP(t *testing.T) {
	handler := newTestServer(t, nil)

	created := createTaskViaAPI(t, handler, dto.TaskCreateRequest{})
	base := "/api/v1/tasks/" + created.Data.ID + "/comments"

	w := do(t, handler, http.MethodPost, base, dto.CommentRequest{AuthorID: "emp-1", Body: "first"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var posted dto.CommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&posted))

	w = do(t, handler, http.MethodPatch, base+"/"+posted.Data.ID, dto.CommentRequest{AuthorID: "emp-1", Body: "edited"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodGet, base, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.CommentListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "edited", list.Data[0].Attributes.Body)

	w = do(t, handler, http.MethodDelete, base+"/"+posted.Data.ID+"?author_id=emp-1", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestViewStateEndpoint(t *testing.T) {
	handler := newTestServer(t, nil)

	dept := "engineering"
	body := dto.ViewStateRequest{
		Current: "status=IN_PROGRESS&page=3",
		Patch:   &filter.Patch{Department: &dept},
	}
	w := do(t, handler, http.MethodPost, "/api/v1/tasks/view", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ViewStateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "department=engineering&status=IN_PROGRESS", resp.Query, "filter change resets the page")
	assert.False(t, resp.Replace)
	assert.True(t, resp.Active)
}

func TestViewStateToggleAndClear(t *testing.T) {
	handler := newTestServer(t, nil)

	w := do(t, handler, http.MethodPost, "/api/v1/tasks/view", dto.ViewStateRequest{
		Current: "status=IN_PROGRESS",
		Toggle:  &dto.ViewToggle{Field: "status", Value: "IN_PROGRESS"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ViewStateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "", resp.Query, "toggling off the last status empties the filter")
	assert.False(t, resp.Active)

	w = do(t, handler, http.MethodPost, "/api/v1/tasks/view", dto.ViewStateRequest{
		Current: "status=IN_PROGRESS&department=legal&page=4",
		Clear:   true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "", resp.Query)
}

func TestPresetEndpoints(t *testing.T) {
	handler := newTestServer(t, nil)

	w := do(t, handler, http.MethodPost, "/api/v1/presets", dto.PresetSaveRequest{
		Name:  "Engineering in progress",
		Query: "department=engineering&status=IN_PROGRESS",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var saved dto.PresetResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&saved))
	assert.Equal(t, "department=engineering&status=IN_PROGRESS", saved.Data.Query)

	w = do(t, handler, http.MethodPost, "/api/v1/presets/match", dto.PresetSaveRequest{
		Query: "status=IN_PROGRESS&department=engineering&page=5",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "match ignores parameter order and page")

	w = do(t, handler, http.MethodPost, "/api/v1/presets/match", dto.PresetSaveRequest{
		Query: "department=finance",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, handler, http.MethodDelete, "/api/v1/presets/"+saved.Data.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDashboardEndpoints(t *testing.T) {
	handler := newTestServer(t, nil)

	createTaskViaAPI(t, handler, dto.TaskCreateRequest{AssigneeID: "emp-1"})

	w := do(t, handler, http.MethodGet, "/api/v1/dashboards/manager/mgr-1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.DashboardResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.EqualValues(t, 1, stats.Total)

	w = do(t, handler, http.MethodGet, "/api/v1/dashboards/employee/emp-1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.EqualValues(t, 1, stats.ByStatus["ASSIGNED"])
}

func TestWriteProtection(t *testing.T) {
	handler := newTestServer(t, []string{"secret"})

	// Reads stay open.
	w := do(t, handler, http.MethodGet, "/api/v1/tasks", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Writes without a key are rejected.
	w = do(t, handler, http.MethodPost, "/api/v1/tasks", dto.TaskCreateRequest{Title: "X", CreatedBy: "mgr-1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Writes with the key pass.
	w = do(t, handler, http.MethodPost, "/api/v1/tasks", dto.TaskCreateRequest{Title: "X", CreatedBy: "mgr-1"},
		map[string]string{"X-API-KEY": "secret"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The view-state computation stays open even though it is a POST.
	w = do(t, handler, http.MethodPost, "/api/v1/tasks/view", dto.ViewStateRequest{Current: ""}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeVerificationOverHTTP(t *testing.T) {
	handler := newTestServer(t, nil)

	w := do(t, handler, http.MethodPost, "/api/v1/employees", dto.EmployeeCreateRequest{
		ID: "emp-1", Name: "Amara Okafor", Email: "amara@corp.test", Department: "engineering",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, handler, http.MethodPost, "/api/v1/employees/emp-1/verification/advance", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.EmployeeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "PENDING_DETAILS_REVIEW", resp.Data.Attributes.Stage)

	w = do(t, handler, http.MethodPost, "/api/v1/employees/emp-1/role", dto.RoleAssignRequest{Role: "analyst"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, "/api/v1/employees/emp-1/verification/reject", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, "/api/v1/employees/emp-1/verification/advance", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "a rejected profile is final")
}
