package models

import "time"

// Lecture defines a lecture row based on the 'lectures' table.
type Lecture struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CourseName  *string   `json:"courseName,omitempty" db:"course_name"` // nullable
	VideoURL    *string   `json:"videoUrl,omitempty" db:"video_url"`     // nullable external reference
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
