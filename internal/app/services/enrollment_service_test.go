package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

type mockEnrollmentStore struct {
	createFn          func(ctx context.Context, enrollment *models.Enrollment) error
	listByStudentIDFn func(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	existsFn          func(ctx context.Context, studentID, semesterID int64) (bool, error)
}

func (m *mockEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.createFn != nil {
		return m.createFn(ctx, enrollment)
	}
	return nil
}

func (m *mockEnrollmentStore) ListByStudentID(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	if m.listByStudentIDFn != nil {
		return m.listByStudentIDFn(ctx, studentID)
	}
	return nil, nil
}

func (m *mockEnrollmentStore) Exists(ctx context.Context, studentID, semesterID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, studentID, semesterID)
	}
	return false, nil
}

func enrollmentFixtures(semesterStatus string) (*mockStudentStore, *mockSemesterStore) {
	students := &mockStudentStore{
		getByUserIDFn: func(_ context.Context, userID int64) (*models.Student, error) {
			return &models.Student{ID: 31, UserID: userID}, nil
		},
	}
	semesters := &mockSemesterStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Semester, error) {
			return &models.Semester{ID: id, Name: "Semester 2", Status: semesterStatus}, nil
		},
	}
	return students, semesters
}

func TestEnrollSuccess(t *testing.T) {
	students, semesters := enrollmentFixtures(models.SemesterStatusInProgress)
	enrollments := &mockEnrollmentStore{
		createFn: func(_ context.Context, e *models.Enrollment) error {
			e.ID = 99
			return nil
		},
	}
	svc := NewEnrollmentService(enrollments, semesters, students, cache.New(), zerolog.Nop())

	enrollment, err := svc.Enroll(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enrollment.StudentID != 31 {
		t.Errorf("StudentID = %d, enrollment must be keyed on the profile row", enrollment.StudentID)
	}
	if enrollment.Semester == nil || enrollment.Semester.Name != "Semester 2" {
		t.Error("enrollment must carry the semester details")
	}
}

func TestEnrollCompletedSemester(t *testing.T) {
	students, semesters := enrollmentFixtures(models.SemesterStatusCompleted)
	created := false
	enrollments := &mockEnrollmentStore{
		createFn: func(_ context.Context, _ *models.Enrollment) error {
			created = true
			return nil
		},
	}
	svc := NewEnrollmentService(enrollments, semesters, students, cache.New(), zerolog.Nop())

	_, err := svc.Enroll(context.Background(), 5, 2)
	if !errors.Is(err, apperrors.ErrSemesterCompleted) {
		t.Fatalf("expected ErrSemesterCompleted, got %v", err)
	}
	if created {
		t.Error("no enrollment row may be written for a completed semester")
	}
}

func TestEnrollDuplicate(t *testing.T) {
	students, semesters := enrollmentFixtures(models.SemesterStatusInProgress)
	enrollments := &mockEnrollmentStore{
		createFn: func(_ context.Context, _ *models.Enrollment) error {
			return apperrors.ErrAlreadyEnrolled
		},
	}
	svc := NewEnrollmentService(enrollments, semesters, students, cache.New(), zerolog.Nop())

	_, err := svc.Enroll(context.Background(), 5, 2)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestListEnrollmentsWithoutProfile(t *testing.T) {
	students := &mockStudentStore{} // GetByUserID defaults to ErrStudentNotFound
	svc := NewEnrollmentService(&mockEnrollmentStore{}, &mockSemesterStore{}, students, cache.New(), zerolog.Nop())

	enrollments, err := svc.ListEnrollments(context.Background(), 5)
	if err != nil {
		t.Fatalf("a missing profile must read as empty, got %v", err)
	}
	if len(enrollments) != 0 {
		t.Errorf("got %d enrollments, want 0", len(enrollments))
	}
}

func TestEnrollInvalidatesListCache(t *testing.T) {
	students, semesters := enrollmentFixtures(models.SemesterStatusUpcoming)

	rows := []models.Enrollment{}
	enrollments := &mockEnrollmentStore{
		createFn: func(_ context.Context, e *models.Enrollment) error {
			rows = append(rows, *e)
			return nil
		},
		listByStudentIDFn: func(_ context.Context, studentID int64) ([]models.Enrollment, error) {
			out := make([]models.Enrollment, len(rows))
			copy(out, rows)
			return out, nil
		},
	}
	svc := NewEnrollmentService(enrollments, semesters, students, cache.New(), zerolog.Nop())

	if got, _ := svc.ListEnrollments(context.Background(), 5); len(got) != 0 {
		t.Fatalf("warm-up read returned %d rows", len(got))
	}

	if _, err := svc.Enroll(context.Background(), 5, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ListEnrollments(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("read after enroll returned %d rows, the cached empty list must be gone", len(got))
	}
}
