package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

type mockResultStore struct {
	listByStudentIDFn func(ctx context.Context, studentID int64) ([]models.Result, error)
	getByIDFn         func(ctx context.Context, id int64) (*models.Result, error)
	createFn          func(ctx context.Context, result *models.Result) error
	updateFn          func(ctx context.Context, id int64, fields map[string]interface{}) error
}

func (m *mockResultStore) ListByStudentID(ctx context.Context, studentID int64) ([]models.Result, error) {
	if m.listByStudentIDFn != nil {
		return m.listByStudentIDFn(ctx, studentID)
	}
	return nil, nil
}

func (m *mockResultStore) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperrors.ErrResultNotFound
}

func (m *mockResultStore) Create(ctx context.Context, result *models.Result) error {
	if m.createFn != nil {
		return m.createFn(ctx, result)
	}
	return nil
}

func (m *mockResultStore) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil
}

func intPtr(v int) *int { return &v }

func TestListResultsWithoutProfile(t *testing.T) {
	svc := NewResultService(&mockResultStore{}, &mockStudentStore{}, cache.New(), zerolog.Nop())

	results, err := svc.ListResults(context.Background(), 5)
	if err != nil {
		t.Fatalf("a missing profile must read as empty, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestListResultsCached(t *testing.T) {
	students := &mockStudentStore{
		getByUserIDFn: func(_ context.Context, userID int64) (*models.Student, error) {
			return &models.Student{ID: 31, UserID: userID}, nil
		},
	}
	calls := 0
	results := &mockResultStore{
		listByStudentIDFn: func(_ context.Context, studentID int64) ([]models.Result, error) {
			calls++
			return []models.Result{{ID: 1, StudentID: studentID, Status: models.ResultStatusPassed}}, nil
		},
	}
	svc := NewResultService(results, students, cache.New(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := svc.ListResults(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d results", len(got))
		}
	}
	if calls != 1 {
		t.Errorf("repository hit %d times, want 1", calls)
	}
}

func TestUpdateResultNoFields(t *testing.T) {
	results := &mockResultStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Result, error) {
			return &models.Result{ID: id, StudentID: 31}, nil
		},
	}
	svc := NewResultService(results, &mockStudentStore{}, cache.New(), zerolog.Nop())

	_, err := svc.UpdateResult(context.Background(), 9, &dto.UpdateResultRequest{})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("empty update must be a bad request, got %v", err)
	}
}

func TestUpdateResultEvictsRelationTags(t *testing.T) {
	results := &mockResultStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Result, error) {
			return &models.Result{ID: id, StudentID: 31, SemesterID: 3}, nil
		},
	}
	store := cache.New()
	store.Set("profile-read", "cached", time.Hour, "student-31")
	store.Set("semester-read", "cached", time.Hour, "semester-3")
	store.Set("unrelated", "cached", time.Hour, "student-99")

	svc := NewResultService(results, &mockStudentStore{}, store, zerolog.Nop())

	status := models.ResultStatusPassed
	if _, err := svc.UpdateResult(context.Background(), 9, &dto.UpdateResultRequest{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := store.Get("profile-read"); ok {
		t.Error("entries tagged with the student must be evicted")
	}
	if _, ok := store.Get("semester-read"); ok {
		t.Error("entries tagged with the semester must be evicted")
	}
	if _, ok := store.Get("unrelated"); !ok {
		t.Error("other students' entries must survive")
	}
}

func TestUpdateResultInvalidatesCaches(t *testing.T) {
	students := &mockStudentStore{
		getByUserIDFn: func(_ context.Context, userID int64) (*models.Student, error) {
			return &models.Student{ID: 31, UserID: userID}, nil
		},
		getByIDFn: func(_ context.Context, id int64) (*models.Student, error) {
			return &models.Student{ID: id, UserID: 5}, nil
		},
	}

	marks := 40
	row := models.Result{ID: 9, StudentID: 31, Marks: marks, Status: models.ResultStatusFailed}
	results := &mockResultStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Result, error) {
			copy := row
			return &copy, nil
		},
		updateFn: func(_ context.Context, id int64, fields map[string]interface{}) error {
			if v, ok := fields["marks"]; ok {
				row.Marks = v.(int)
			}
			if v, ok := fields["status"]; ok {
				row.Status = v.(string)
			}
			return nil
		},
		listByStudentIDFn: func(_ context.Context, studentID int64) ([]models.Result, error) {
			copy := row
			return []models.Result{copy}, nil
		},
	}

	svc := NewResultService(results, students, cache.New(), zerolog.Nop())

	if got, _ := svc.ListResults(context.Background(), 5); got[0].Marks != 40 {
		t.Fatalf("warm-up read marks = %d", got[0].Marks)
	}

	status := models.ResultStatusPassed
	updated, err := svc.UpdateResult(context.Background(), 9, &dto.UpdateResultRequest{
		Marks:  intPtr(88),
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Marks != 88 || updated.Status != models.ResultStatusPassed {
		t.Errorf("updated row = %+v", updated)
	}

	got, err := svc.ListResults(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Marks != 88 {
		t.Errorf("read after write marks = %d, stale cache must be gone", got[0].Marks)
	}
}
