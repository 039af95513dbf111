// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/middleware"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1/dto"
)

// TasksRouter handles task API endpoints.
type TasksRouter struct {
	tasks    *service.TaskService
	comments *service.CommentService
	logger   *slog.Logger
}

// NewTasksRouter creates a TasksRouter.
func NewTasksRouter(tasks *service.TaskService, comments *service.CommentService, logger *slog.Logger) *TasksRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TasksRouter{tasks: tasks, comments: comments, logger: logger}
}

// Routes returns the chi router for task endpoints.
func (t *TasksRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", t.Search)
	router.Get("/feed", t.Feed)
	router.Post("/", t.Create)
	router.Post("/view", t.ViewState)
	router.Post("/bulk/cancel", t.BulkCancel)
	router.Get("/{id}", t.Get)
	router.Patch("/{id}", t.Update)
	router.Post("/{id}/assign", t.Assign)
	router.Post("/{id}/start", t.Start)
	router.Post("/{id}/progress", t.Progress)
	router.Post("/{id}/submit", t.Submit)
	router.Post("/{id}/review", t.Review)
	router.Post("/{id}/cancel", t.Cancel)
	router.Get("/{id}/activities", t.Activities)
	router.Get("/{id}/comments", t.ListComments)
	router.Post("/{id}/comments", t.AddComment)
	router.Patch("/{id}/comments/{comment_id}", t.UpdateComment)
	router.Delete("/{id}/comments/{comment_id}", t.DeleteComment)

	return router
}

// Search handles GET /api/v1/tasks. The full filter vocabulary of the SPA
// URL is accepted as query parameters; malformed values degrade to
// defaults rather than failing the request.
func (t *TasksRouter) Search(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	f := filter.ParseQuery(req.URL.Query())
	page, err := t.tasks.SearchTasks(ctx, f)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskListResponse{
		Data:  tasksToDTO(page.Items),
		Meta:  pageMeta(page.Page, page.Limit, page.Total, page.TotalPages()),
		Links: pageLinks(req, f, page.TotalPages()),
	})
}

// Feed handles GET /api/v1/tasks/feed: the infinite-scroll variant of
// Search. The response carries every page loaded so far for the filter,
// so the SPA appends instead of replacing.
func (t *TasksRouter) Feed(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	f := filter.ParseQuery(req.URL.Query())
	feed, err := t.tasks.SearchTasksFeed(ctx, f)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskListResponse{
		Data: tasksToDTO(feed.Items),
		Meta: map[string]any{
			"total_count": feed.Total,
			"last_page":   feed.LastPage,
			"limit":       feed.Limit,
			"has_more":    feed.HasMore(),
		},
	})
}

// Create handles POST /api/v1/tasks.
func (t *TasksRouter) Create(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.TaskCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	taskType := task.TypeGeneral
	if v, ok := task.ParseType(body.Type); ok {
		taskType = v
	}
	priority := task.PriorityMedium
	if v, ok := task.ParsePriority(body.Priority); ok {
		priority = v
	}

	dueDate, err := parseDueDate(body.DueDate)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	created, err := t.tasks.CreateTask(ctx, service.CreateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		Type:        taskType,
		Priority:    priority,
		Department:  body.Department,
		Tags:        body.Tags,
		DueDate:     dueDate,
		CreatedBy:   body.CreatedBy,
		AssigneeID:  body.AssigneeID,
	})
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.TaskResponse{Data: taskToDTO(created)})
}

// Get handles GET /api/v1/tasks/{id}.
func (t *TasksRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	found, err := t.tasks.GetTask(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskResponse{Data: taskToDTO(found)})
}

// Update handles PATCH /api/v1/tasks/{id}.
func (t *TasksRouter) Update(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.TaskUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	priority := task.PriorityMedium
	if v, ok := task.ParsePriority(body.Priority); ok {
		priority = v
	}

	dueDate, err := parseDueDate(body.DueDate)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	updated, err := t.tasks.UpdateTask(ctx, id, body.ActorID, service.UpdateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		Priority:    priority,
		Tags:        body.Tags,
		DueDate:     dueDate,
	})
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskResponse{Data: taskToDTO(updated)})
}

// Assign handles POST /api/v1/tasks/{id}/assign.
func (t *TasksRouter) Assign(w http.ResponseWriter, req *http.Request) {
	t.lifecycle(w, req, func(id int64, body dto.TaskActionRequest) (task.Task, error) {
		return t.tasks.AssignTask(req.Context(), id, body.AssigneeID, body.ActorID)
	})
}

// Start handles POST /api/v1/tasks/{id}/start.
func (t *TasksRouter) Start(w http.ResponseWriter, req *http.Request) {
	t.lifecycle(w, req, func(id int64, body dto.TaskActionRequest) (task.Task, error) {
		return t.tasks.StartTask(req.Context(), id, body.ActorID)
	})
}

// Submit handles POST /api/v1/tasks/{id}/submit.
func (t *TasksRouter) Submit(w http.ResponseWriter, req *http.Request) {
	t.lifecycle(w, req, func(id int64, body dto.TaskActionRequest) (task.Task, error) {
		return t.tasks.SubmitTask(req.Context(), id, body.ActorID)
	})
}

// Cancel handles POST /api/v1/tasks/{id}/cancel.
func (t *TasksRouter) Cancel(w http.ResponseWriter, req *http.Request) {
	t.lifecycle(w, req, func(id int64, body dto.TaskActionRequest) (task.Task, error) {
		return t.tasks.CancelTask(req.Context(), id, body.ActorID)
	})
}

// Progress handles POST /api/v1/tasks/{id}/progress.
func (t *TasksRouter) Progress(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.TaskProgressRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	updated, err := t.tasks.UpdateProgress(ctx, id, body.Progress, body.ActorID)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskResponse{Data: taskToDTO(updated)})
}

// Review handles POST /api/v1/tasks/{id}/review.
func (t *TasksRouter) Review(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.TaskReviewRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	reviewed, err := t.tasks.ReviewTask(ctx, id, service.ReviewDecision(body.Decision), body.ActorID)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskResponse{Data: taskToDTO(reviewed)})
}

// BulkCancel handles POST /api/v1/tasks/bulk/cancel.
func (t *TasksRouter) BulkCancel(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.TaskBulkCancelRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	result, err := t.tasks.BulkCancelTasks(ctx, body.TaskIDs, body.ActorID)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	resp := dto.TaskBulkCancelResponse{Cancelled: result.Cancelled}
	if len(result.Failed) > 0 {
		resp.Failed = make(map[int64]string, len(result.Failed))
		for id, failure := range result.Failed {
			resp.Failed[id] = failure.Error()
		}
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Activities handles GET /api/v1/tasks/{id}/activities.
func (t *TasksRouter) Activities(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	activities, err := t.tasks.Activities(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	data := make([]dto.ActivityData, 0, len(activities))
	for _, a := range activities {
		data = append(data, dto.ActivityData{
			Type: "activity",
			ID:   a.ID(),
			Attributes: dto.ActivityAttributes{
				TaskID:    a.TaskID(),
				ActorID:   a.ActorID(),
				Action:    string(a.Action()),
				Detail:    a.Detail(),
				CreatedAt: a.CreatedAt(),
			},
		})
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ActivityListResponse{Data: data})
}

// ListComments handles GET /api/v1/tasks/{id}/comments.
func (t *TasksRouter) ListComments(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	comments, err := t.comments.ListComments(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	data := make([]dto.CommentData, 0, len(comments))
	for _, c := range comments {
		data = append(data, commentToDTO(c))
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CommentListResponse{Data: data})
}

// AddComment handles POST /api/v1/tasks/{id}/comments.
func (t *TasksRouter) AddComment(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.CommentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	posted, err := t.comments.AddComment(ctx, id, body.AuthorID, body.Body)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CommentResponse{Data: commentToDTO(posted)})
}

// UpdateComment handles PATCH /api/v1/tasks/{id}/comments/{comment_id}.
func (t *TasksRouter) UpdateComment(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	commentID, err := pathID(req, "comment_id")
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.CommentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	edited, err := t.comments.UpdateComment(ctx, commentID, body.AuthorID, body.Body)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CommentResponse{Data: commentToDTO(edited)})
}

// DeleteComment handles DELETE /api/v1/tasks/{id}/comments/{comment_id}.
func (t *TasksRouter) DeleteComment(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	commentID, err := pathID(req, "comment_id")
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	authorID := req.URL.Query().Get("author_id")
	if err := t.comments.DeleteComment(ctx, commentID, authorID); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ViewState handles POST /api/v1/tasks/view. It applies a filter change
// to the SPA's current URL query and returns the canonical next query
// string plus whether the browser should replace instead of push history.
func (t *TasksRouter) ViewState(w http.ResponseWriter, req *http.Request) {
	var body dto.ViewStateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	current := filter.Parse(body.Current)
	next := current
	replace := false

	switch {
	case body.Clear:
		next = current.Clear()
	case body.Toggle != nil:
		next = current.Toggle(filter.ArrayField(body.Toggle.Field), body.Toggle.Value)
	case body.Patch != nil:
		var options []filter.ApplyOption
		if body.ResetPage != nil {
			options = append(options, filter.WithResetPage(*body.ResetPage))
		}
		next = current.Apply(*body.Patch, options...)
		replace = searchOrPageOnly(*body.Patch)
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ViewStateResponse{
		Query:     next.Encode(),
		Replace:   replace,
		Active:    next.IsActive(),
		Summaries: next.Summaries(),
	})
}

// searchOrPageOnly reports whether a patch changes only the search text or
// only the page. Those updates replace the history entry so typing and
// paging do not flood the back stack.
func searchOrPageOnly(p filter.Patch) bool {
	rest := p
	rest.Search = nil
	rest.Page = nil
	if rest != (filter.Patch{}) {
		return false
	}
	return p.Search != nil || p.Page != nil
}

// lifecycle decodes a TaskActionRequest body and runs one lifecycle move.
func (t *TasksRouter) lifecycle(w http.ResponseWriter, req *http.Request, run func(int64, dto.TaskActionRequest) (task.Task, error)) {
	id, err := taskID(req)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	var body dto.TaskActionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	result, err := run(id, body)
	if err != nil {
		middleware.WriteError(w, req, err, t.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskResponse{Data: taskToDTO(result)})
}

func taskID(req *http.Request) (int64, error) {
	return pathID(req, "id")
}

func pathID(req *http.Request, name string) (int64, error) {
	raw := chi.URLParam(req, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", service.ErrValidation, name)
	}
	return id, nil
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, ok := filter.ParseDate(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD", service.ErrValidation)
	}
	ts := d.Time()
	return &ts, nil
}

func tasksToDTO(tasks []task.Task) []dto.TaskData {
	result := make([]dto.TaskData, len(tasks))
	for i, t := range tasks {
		result[i] = taskToDTO(t)
	}
	return result
}

func taskToDTO(t task.Task) dto.TaskData {
	return dto.TaskData{
		Type: "task",
		ID:   strconv.FormatInt(t.ID(), 10),
		Attributes: dto.TaskAttributes{
			Code:        t.Code(),
			Title:       t.Title(),
			Description: t.Description(),
			Type:        string(t.Type()),
			Priority:    string(t.Priority()),
			Status:      string(t.Status()),
			AssigneeID:  t.AssigneeID(),
			Department:  t.Department(),
			Tags:        t.Tags(),
			Progress:    t.Progress(),
			DueDate:     t.DueDate(),
			CreatedBy:   t.CreatedBy(),
			CreatedAt:   t.CreatedAt(),
			UpdatedAt:   t.UpdatedAt(),
		},
	}
}

func commentToDTO(c task.Comment) dto.CommentData {
	return dto.CommentData{
		Type: "comment",
		ID:   strconv.FormatInt(c.ID(), 10),
		Attributes: dto.CommentAttributes{
			TaskID:    c.TaskID(),
			AuthorID:  c.AuthorID(),
			Body:      c.Body(),
			CreatedAt: c.CreatedAt(),
			UpdatedAt: c.UpdatedAt(),
		},
	}
}
