package models

import "time"

// Semester status values.
const (
	SemesterStatusCompleted  = "Completed"
	SemesterStatusInProgress = "In Progress"
	SemesterStatusUpcoming   = "Upcoming"
)

// Semester delivery modes.
const (
	SemesterModeOnsite = "Onsite"
	SemesterModeOnline = "Online"
)

// Course defines a course row referenced by semesters.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Web Development"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Semester defines a semester row based on the 'semesters' table.
type Semester struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Semester 1"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status" example:"In Progress"`
	Batch       string    `json:"batch" db:"batch"`
	City        string    `json:"city" db:"city"`
	Mode        string    `json:"mode" db:"mode" example:"Onsite"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	CourseName  string    `json:"courseName" db:"course_name"` // joined from courses, no db column
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
