package dto

import "time"

// UpdateProfileRequest carries the editable profile fields. Every field is
// optional; omitted fields keep their stored value on update and default to
// empty on the lazy insert.
type UpdateProfileRequest struct {
	FullName   *string `json:"fullName,omitempty" binding:"omitempty,min=2,max=100"`
	FatherName *string `json:"fatherName,omitempty" binding:"omitempty,min=2,max=100"`
	StudentID  *string `json:"studentId,omitempty"`
	RollNo     *string `json:"rollNo,omitempty"`
	City       *string `json:"city,omitempty"`
	Gender     *string `json:"gender,omitempty" binding:"omitempty,oneof=Male Female Other"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Currently  *string `json:"currently,omitempty"`
	Course     *string `json:"course,omitempty"`
	Batch      *string `json:"batch,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// ProfileResponse is the profile read shape, with the avatar path already
// resolved to a fetchable URL.
type ProfileResponse struct {
	ID         int64      `json:"id"`
	FullName   string     `json:"fullName"`
	FatherName string     `json:"fatherName"`
	StudentID  string     `json:"studentId"`
	RollNo     string     `json:"rollNo"`
	City       string     `json:"city"`
	Gender     string     `json:"gender"`
	Email      string     `json:"email"`
	Currently  string     `json:"currently"`
	Course     string     `json:"course"`
	Batch      string     `json:"batch"`
	AvatarURL  string     `json:"avatarUrl"`
	AdmitDate  *time.Time `json:"admitDate,omitempty"`
}

// AvatarUploadResponse is returned after a successful avatar upload.
type AvatarUploadResponse struct {
	Path      string `json:"path" example:"5/1714406400.png"`
	AvatarURL string `json:"avatarUrl"`
}
