package models

import "time"

// Enrollment links a student to a semester.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	SemesterID int64     `json:"semesterId" db:"semester_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Semester *Semester `json:"semester,omitempty"`
}
