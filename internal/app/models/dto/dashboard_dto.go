package dto

import "github.com/quicktech/studentportal/internal/app/models"

// DashboardResponse aggregates everything the dashboard page shows in one
// read. Sections that fail to load come back empty rather than failing the
// whole response.
type DashboardResponse struct {
	Profile       *ProfileResponse `json:"profile,omitempty"`
	AvatarURL     string           `json:"avatarUrl"`
	Results       []models.Result  `json:"results"`
	ResultsPassed int              `json:"resultsPassed"`
	ResultsFailed int              `json:"resultsFailed"`
}
