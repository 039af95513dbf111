package task

// Status represents the lifecycle state of a task.
type Status string

// Status values.
const (
	StatusDraft      Status = "DRAFT"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusInReview   Status = "IN_REVIEW"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusAssigned,
		StatusInProgress,
		StatusSubmitted,
		StatusInReview,
		StatusCompleted,
		StatusCancelled,
	}
}

// ParseStatus parses a status token. Unknown tokens return false.
func ParseStatus(s string) (Status, bool) {
	for _, v := range AllStatuses() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status represents a terminal (final) state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusAssigned
	case StatusAssigned:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusInReview
	case StatusInReview:
		// A rejected review sends the task back to the assignee.
		return next == StatusCompleted || next == StatusInProgress
	default:
		return false
	}
}

// Priority represents task urgency.
type Priority string

// Priority values.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// AllPriorities returns every valid priority from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ParsePriority parses a priority token. Unknown tokens return false.
func ParsePriority(s string) (Priority, bool) {
	for _, v := range AllPriorities() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Rank returns a numeric rank for sorting (higher is more urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Type categorises the kind of work a task represents.
type Type string

// Type values.
const (
	TypeOnboarding    Type = "ONBOARDING"
	TypeDocumentation Type = "DOCUMENTATION"
	TypeTraining      Type = "TRAINING"
	TypeCompliance    Type = "COMPLIANCE"
	TypeGeneral       Type = "GENERAL"
)

// AllTypes returns every valid task type.
func AllTypes() []Type {
	return []Type{TypeOnboarding, TypeDocumentation, TypeTraining, TypeCompliance, TypeGeneral}
}

// ParseType parses a task type token. Unknown tokens return false.
func ParseType(s string) (Type, bool) {
	for _, v := range AllTypes() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}
