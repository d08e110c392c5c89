package models

import "time"

// Student defines the student profile model based on the 'students' table.
// At most one row exists per account; the row is created lazily on first
// profile save.
type Student struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	UserID     int64      `json:"userId" db:"user_id" example:"5"`
	FullName   string     `json:"fullName" db:"full_name" example:"Ahmed Khan"`
	FatherName string     `json:"fatherName" db:"father_name"`
	StudentID  string     `json:"studentId" db:"student_id" example:"QT-2024-0154"` // registration number
	RollNo     string     `json:"rollNo" db:"roll_no" example:"154"`
	City       string     `json:"city" db:"city"`
	Gender     string     `json:"gender" db:"gender"`
	Email      string     `json:"email" db:"email"`
	Currently  string     `json:"currently" db:"currently" example:"Enrolled"` // enrollment status tag
	Avatar     string     `json:"avatar" db:"avatar"`                          // path inside the avatars storage root
	Course     string     `json:"course" db:"course"`
	Batch      string     `json:"batch" db:"batch"`
	AdmitDate  *time.Time `json:"admitDate,omitempty" db:"admit_date"` // nullable, set by admins only
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
