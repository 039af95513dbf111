package dto

import "time"

// DashboardResponse carries one user's dashboard statistics.
type DashboardResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	Overdue        int64            `json:"overdue"`
	CompletionRate float64          `json:"completion_rate"`
	ComputedAt     time.Time        `json:"computed_at"`
}
