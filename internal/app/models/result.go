package models

import "time"

// ResultStatus values as stored in the 'results' table.
const (
	ResultStatusPassed = "Passed"
	ResultStatusFailed = "Failed"
)

// Result defines an exam result row, one per (student, semester). Read-only
// from the portal's perspective; the admin write path is the only mutation.
type Result struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	SemesterID int64     `json:"semesterId" db:"semester_id"`
	Semester   string    `json:"semester" db:"semester"`
	Title      string    `json:"title" db:"title"`
	Marks      int       `json:"marks" db:"marks"`
	Grade      string    `json:"grade" db:"grade" example:"A+"`
	Percentile string    `json:"percentile" db:"percentile"`
	Status     string    `json:"status" db:"status" example:"Passed"`
	Subjects   string    `json:"subjects" db:"subjects"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
