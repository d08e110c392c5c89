package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

type mockSemesterStore struct {
	listAllFn     func(ctx context.Context) ([]models.Semester, error)
	getByIDFn     func(ctx context.Context, id int64) (*models.Semester, error)
	listCoursesFn func(ctx context.Context) ([]models.Course, error)
}

func (m *mockSemesterStore) ListAll(ctx context.Context) ([]models.Semester, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockSemesterStore) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSemesterStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	if m.listCoursesFn != nil {
		return m.listCoursesFn(ctx)
	}
	return nil, nil
}

func TestCanOpenPortal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.SemesterStatusCompleted, false},
		{models.SemesterStatusInProgress, true},
		{models.SemesterStatusUpcoming, true},
		{"", true},
	}
	for _, tt := range tests {
		if got := CanOpenPortal(tt.status); got != tt.want {
			t.Errorf("CanOpenPortal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestListSemestersEligibilityFlag(t *testing.T) {
	repo := &mockSemesterStore{
		listAllFn: func(context.Context) ([]models.Semester, error) {
			return []models.Semester{
				{ID: 1, Name: "Semester 1", Status: models.SemesterStatusCompleted, CourseName: "Web Development"},
				{ID: 2, Name: "Semester 2", Status: models.SemesterStatusInProgress, CourseName: "Web Development"},
			}, nil
		},
	}
	svc := NewSemesterService(repo, cache.New(), zerolog.Nop())

	semesters, err := svc.ListSemesters(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(semesters) != 2 {
		t.Fatalf("got %d semesters", len(semesters))
	}
	if semesters[0].CanOpenPortal {
		t.Error("completed semester must not accept the action")
	}
	if !semesters[1].CanOpenPortal {
		t.Error("in-progress semester must accept the action")
	}
	if semesters[1].CourseName != "Web Development" {
		t.Errorf("course name missing: %q", semesters[1].CourseName)
	}
}

func TestListSemestersCached(t *testing.T) {
	calls := 0
	repo := &mockSemesterStore{
		listAllFn: func(context.Context) ([]models.Semester, error) {
			calls++
			return []models.Semester{{ID: 1}}, nil
		},
	}
	svc := NewSemesterService(repo, cache.New(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.ListSemesters(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("repository hit %d times, want 1", calls)
	}
}
