package domain

// OverviewStats is the read-only aggregate shown on dashboards.
type OverviewStats struct {
	TotalRequests int `json:"totalRequests"`
	Submitted     int `json:"submitted"`
	InProgress    int `json:"inProgress"`
	Completed     int `json:"completed"`
}
