package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

// SemesterStore is the semester persistence surface.
type SemesterStore interface {
	ListAll(ctx context.Context) ([]models.Semester, error)
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
}

// SemesterService handles cached semester and course reads.
type SemesterService struct {
	semesterRepo SemesterStore
	store        *cache.Store
	logger       zerolog.Logger
}

// NewSemesterService creates a new SemesterService
func NewSemesterService(semesterRepo SemesterStore, store *cache.Store, logger zerolog.Logger) *SemesterService {
	return &SemesterService{
		semesterRepo: semesterRepo,
		store:        store,
		logger:       logger,
	}
}

// CanOpenPortal reports whether a semester still accepts enrollments. Only a
// completed semester is closed; upcoming and in-progress semesters both
// accept the action.
func CanOpenPortal(status string) bool {
	return status != models.SemesterStatusCompleted
}

func toSemesterResponse(sem models.Semester) dto.SemesterResponse {
	return dto.SemesterResponse{
		ID:            sem.ID,
		Name:          sem.Name,
		Description:   sem.Description,
		Status:        sem.Status,
		Batch:         sem.Batch,
		City:          sem.City,
		Mode:          sem.Mode,
		CourseID:      sem.CourseID,
		CourseName:    sem.CourseName,
		CanOpenPortal: CanOpenPortal(sem.Status),
	}
}

// ListSemesters returns every semester with its eligibility flag, cached for
// an hour under the semesters tag.
func (s *SemesterService) ListSemesters(ctx context.Context) ([]dto.SemesterResponse, error) {
	return cache.Fetch(ctx, s.store, "semesters", cacheTTLStandard, []string{"semesters", "courses"},
		func(ctx context.Context) ([]dto.SemesterResponse, error) {
			semesters, err := s.semesterRepo.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			responses := make([]dto.SemesterResponse, 0, len(semesters))
			for _, sem := range semesters {
				responses = append(responses, toSemesterResponse(sem))
			}
			return responses, nil
		})
}

// ListCourses returns every course, cached for an hour under the courses tag.
func (s *SemesterService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return cache.Fetch(ctx, s.store, "courses", cacheTTLStandard, []string{"courses"},
		func(ctx context.Context) ([]models.Course, error) {
			return s.semesterRepo.ListCourses(ctx)
		})
}
