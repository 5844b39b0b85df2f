package models

// Pagination describes the slice of a listing returned to the client.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// DashboardStats summarises the collections for the landing screen.
type DashboardStats struct {
	Teachers      int `json:"teachers"`
	Events        int `json:"events"`
	Students      int `json:"students"`
	PendingEvents int `json:"pending_events"`
}
