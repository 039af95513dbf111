package dto

import "time"

// EmployeeAttributes carries one employee profile.
type EmployeeAttributes struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role,omitempty"`
	Stage      string    `json:"stage"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeData is one employee resource.
type EmployeeData struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes EmployeeAttributes `json:"attributes"`
}

// EmployeeResponse wraps a single employee.
type EmployeeResponse struct {
	Data EmployeeData `json:"data"`
}

// EmployeeListResponse wraps an employee page.
type EmployeeListResponse struct {
	Data []EmployeeData `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// EmployeeCreateRequest is the body for POST /employees.
type EmployeeCreateRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// RoleAssignRequest is the body for POST /employees/{id}/role.
type RoleAssignRequest struct {
	Role string `json:"role"`
}
