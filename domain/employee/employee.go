// Package employee provides the employee domain: profiles and the
// verification review pipeline.
package employee

import (
	"errors"
	"time"
)

// ErrTerminalStage is returned when a stage change is requested on a
// profile that already reached VERIFIED or REJECTED.
var ErrTerminalStage = errors.New("employee: verification already finalised")

// Employee represents an employee profile under verification.
type Employee struct {
	id         string
	name       string
	email      string
	department string
	role       string
	stage      VerificationStage
	createdAt  time.Time
	updatedAt  time.Time
}

// NewEmployee creates an employee profile at the start of the pipeline.
func NewEmployee(id, name, email, department string) Employee {
	now := time.Now().UTC()
	return Employee{
		id:         id,
		name:       name,
		email:      email,
		department: department,
		stage:      StageNotStarted,
		createdAt:  now,
		updatedAt:  now,
	}
}

// ReconstructEmployee creates an Employee with all fields (used by stores).
func ReconstructEmployee(id, name, email, department, role string, stage VerificationStage, createdAt, updatedAt time.Time) Employee {
	return Employee{
		id:         id,
		name:       name,
		email:      email,
		department: department,
		role:       role,
		stage:      stage,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the employee ID.
func (e Employee) ID() string { return e.id }

// Name returns the employee's display name.
func (e Employee) Name() string { return e.name }

// Email returns the employee's email address.
func (e Employee) Email() string { return e.email }

// Department returns the employee's department.
func (e Employee) Department() string { return e.department }

// Role returns the assigned role, or empty before role assignment.
func (e Employee) Role() string { return e.role }

// Stage returns the current verification stage.
func (e Employee) Stage() VerificationStage { return e.stage }

// CreatedAt returns when the profile was created.
func (e Employee) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns when the profile was last updated.
func (e Employee) UpdatedAt() time.Time { return e.updatedAt }

// Advance moves the profile to the next verification stage.
func (e Employee) Advance() (Employee, error) {
	if !e.stage.CanAdvance() {
		return e, ErrTerminalStage
	}
	e.stage = e.stage.Next()
	e.updatedAt = time.Now().UTC()
	return e, nil
}

// AssignRole records the assigned role. Expected during the
// PENDING_ROLE_ASSIGNMENT stage but permitted at any non-terminal stage.
func (e Employee) AssignRole(role string) (Employee, error) {
	if e.stage.IsTerminal() {
		return e, ErrTerminalStage
	}
	e.role = role
	e.updatedAt = time.Now().UTC()
	return e, nil
}

// Reject finalises the profile as REJECTED.
func (e Employee) Reject() (Employee, error) {
	if e.stage.IsTerminal() {
		return e, ErrTerminalStage
	}
	e.stage = StageRejected
	e.updatedAt = time.Now().UTC()
	return e, nil
}
