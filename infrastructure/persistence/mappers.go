package persistence

import (
	"encoding/json"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

// TaskMapper maps between domain Task and TaskModel.
type TaskMapper struct{}

// ToDomain converts a TaskModel to a domain Task.
func (m TaskMapper) ToDomain(e TaskModel) task.Task {
	return task.ReconstructTask(
		e.ID,
		e.Code,
		e.Title,
		e.Description,
		task.Type(e.Type),
		task.Priority(e.Priority),
		task.Status(e.Status),
		e.AssigneeID,
		e.Department,
		tagsFromDB(e.Tags),
		e.Progress,
		e.DueDate,
		e.CreatedBy,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Task to a TaskModel.
func (m TaskMapper) ToModel(t task.Task) TaskModel {
	return TaskModel{
		ID:          t.ID(),
		Code:        t.Code(),
		Title:       t.Title(),
		Description: t.Description(),
		Type:        string(t.Type()),
		Priority:    string(t.Priority()),
		Status:      string(t.Status()),
		AssigneeID:  t.AssigneeID(),
		Department:  t.Department(),
		Tags:        tagsToDB(t.Tags()),
		Progress:    t.Progress(),
		DueDate:     t.DueDate(),
		CreatedBy:   t.CreatedBy(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// tagsToDB encodes tags as a JSON array. Empty means no tags.
func tagsToDB(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func tagsFromDB(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

// CommentMapper maps between domain Comment and CommentModel.
type CommentMapper struct{}

// ToDomain converts a CommentModel to a domain Comment.
func (m CommentMapper) ToDomain(e CommentModel) task.Comment {
	return task.ReconstructComment(e.ID, e.TaskID, e.AuthorID, e.Body, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Comment to a CommentModel.
func (m CommentMapper) ToModel(c task.Comment) CommentModel {
	return CommentModel{
		ID:        c.ID(),
		TaskID:    c.TaskID(),
		AuthorID:  c.AuthorID(),
		Body:      c.Body(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// ActivityMapper maps between domain Activity and ActivityModel.
type ActivityMapper struct{}

// ToDomain converts an ActivityModel to a domain Activity.
func (m ActivityMapper) ToDomain(e ActivityModel) task.Activity {
	return task.ReconstructActivity(e.ID, e.TaskID, e.ActorID, task.Action(e.Action), e.Detail, e.CreatedAt)
}

// ToModel converts a domain Activity to an ActivityModel.
func (m ActivityMapper) ToModel(a task.Activity) ActivityModel {
	return ActivityModel{
		ID:        a.ID(),
		TaskID:    a.TaskID(),
		ActorID:   a.ActorID(),
		Action:    string(a.Action()),
		Detail:    a.Detail(),
		CreatedAt: a.CreatedAt(),
	}
}

// EmployeeMapper maps between domain Employee and EmployeeModel.
type EmployeeMapper struct{}

// ToDomain converts an EmployeeModel to a domain Employee.
func (m EmployeeMapper) ToDomain(e EmployeeModel) employee.Employee {
	return employee.ReconstructEmployee(
		e.ID,
		e.Name,
		e.Email,
		e.Department,
		e.Role,
		employee.VerificationStage(e.Stage),
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Employee to an EmployeeModel.
func (m EmployeeMapper) ToModel(e employee.Employee) EmployeeModel {
	return EmployeeModel{
		ID:         e.ID(),
		Name:       e.Name(),
		Email:      e.Email(),
		Department: e.Department(),
		Role:       e.Role(),
		Stage:      string(e.Stage()),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}
