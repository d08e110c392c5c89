package dto

// SemesterResponse is a semester joined to its course name, plus the portal
// eligibility flag the courses page uses to disable the action button.
type SemesterResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Status        string `json:"status" example:"In Progress"`
	Batch         string `json:"batch"`
	City          string `json:"city"`
	Mode          string `json:"mode"`
	CourseID      int64  `json:"courseId"`
	CourseName    string `json:"courseName"`
	CanOpenPortal bool   `json:"canOpenPortal"`
}

// CreateEnrollmentRequest is the "Open Portal" action payload.
type CreateEnrollmentRequest struct {
	SemesterID int64 `json:"semesterId" binding:"required,gt=0"`
}

// CreateAnnouncementRequest is the admin-side announcement publish payload.
type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
	Body  string `json:"body" binding:"required"`
}

// UpdateResultRequest is the admin-side result mutation payload.
type UpdateResultRequest struct {
	Marks      *int    `json:"marks,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	Percentile *string `json:"percentile,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=Passed Failed"`
	Subjects   *string `json:"subjects,omitempty"`
}
