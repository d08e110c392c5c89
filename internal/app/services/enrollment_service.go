package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

// EnrollmentStore is the enrollment persistence surface.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListByStudentID(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	Exists(ctx context.Context, studentID, semesterID int64) (bool, error)
}

// EnrollmentService handles the "Open Portal" action and enrollment reads.
type EnrollmentService struct {
	enrollmentRepo EnrollmentStore
	semesterRepo   SemesterStore
	studentRepo    StudentStore
	store          *cache.Store
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo EnrollmentStore,
	semesterRepo SemesterStore,
	studentRepo StudentStore,
	store *cache.Store,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		semesterRepo:   semesterRepo,
		studentRepo:    studentRepo,
		store:          store,
		logger:         logger,
	}
}

func enrollmentsCacheKey(studentID int64) string {
	return fmt.Sprintf("enrollments:%d", studentID)
}

func enrollmentTags(studentID, semesterID int64) []string {
	return []string{
		fmt.Sprintf("enrollments-%d", studentID),
		fmt.Sprintf("semester-%d", semesterID),
		"enrollments",
	}
}

// Enroll records the caller into a semester. A completed semester rejects the
// action; enrolling twice in the same semester fails with a conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, semesterID int64) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	semester, err := s.semesterRepo.GetByID(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	if !CanOpenPortal(semester.Status) {
		return nil, apperrors.ErrSemesterCompleted
	}

	enrollment := &models.Enrollment{
		StudentID:  student.ID,
		SemesterID: semesterID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Semester = semester

	s.store.Invalidate(enrollmentTags(student.ID, semesterID)...)
	s.logger.Info().
		Int64("studentID", student.ID).
		Int64("semesterID", semesterID).
		Msg("Student enrolled in semester")

	return enrollment, nil
}

// ListEnrollments returns the caller's enrollments with semester details,
// cached for an hour. No profile row means no enrollments yet.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return []models.Enrollment{}, nil
		}
		return nil, err
	}

	tags := []string{fmt.Sprintf("enrollments-%d", student.ID), "enrollments"}
	return cache.Fetch(ctx, s.store, enrollmentsCacheKey(student.ID), cacheTTLStandard, tags,
		func(ctx context.Context) ([]models.Enrollment, error) {
			return s.enrollmentRepo.ListByStudentID(ctx, student.ID)
		})
}
