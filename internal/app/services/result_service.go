package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

// ResultStore is the result persistence surface.
type ResultStore interface {
	ListByStudentID(ctx context.Context, studentID int64) ([]models.Result, error)
	GetByID(ctx context.Context, id int64) (*models.Result, error)
	Create(ctx context.Context, result *models.Result) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
}

// ResultService handles cached result reads and the admin-side mutation.
type ResultService struct {
	resultRepo  ResultStore
	studentRepo StudentStore
	store       *cache.Store
	logger      zerolog.Logger
}

// NewResultService creates a new ResultService
func NewResultService(resultRepo ResultStore, studentRepo StudentStore, store *cache.Store, logger zerolog.Logger) *ResultService {
	return &ResultService{
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		store:       store,
		logger:      logger,
	}
}

func resultsCacheKey(studentID int64) string {
	return fmt.Sprintf("results:%d", studentID)
}

func resultsTags(studentID, userID int64) []string {
	return []string{
		fmt.Sprintf("results-%d", studentID),
		fmt.Sprintf("results-user-%d", userID),
		"results",
	}
}

// ListResults returns every result for the caller's profile, cached for an
// hour. An account with no profile row yet simply has no results.
func (s *ResultService) ListResults(ctx context.Context, userID int64) ([]models.Result, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return []models.Result{}, nil
		}
		return nil, err
	}

	return cache.Fetch(ctx, s.store, resultsCacheKey(student.ID), cacheTTLStandard,
		resultsTags(student.ID, userID),
		func(ctx context.Context) ([]models.Result, error) {
			return s.resultRepo.ListByStudentID(ctx, student.ID)
		})
}

// UpdateResult applies an admin edit to a result row and invalidates every
// cache entry that could surface the stale values.
func (s *ResultService) UpdateResult(ctx context.Context, resultID int64, req *dto.UpdateResultRequest) (*models.Result, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Marks != nil {
		fields["marks"] = *req.Marks
	}
	if req.Grade != nil {
		fields["grade"] = *req.Grade
	}
	if req.Percentile != nil {
		fields["percentile"] = *req.Percentile
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Subjects != nil {
		fields["subjects"] = *req.Subjects
	}

	if len(fields) == 0 {
		return nil, apperrors.NewBadRequestError("no result fields to update")
	}

	if err := s.resultRepo.Update(ctx, resultID, fields); err != nil {
		return nil, err
	}

	// The student and semester tags cover any future read cached against
	// the row's relations, not just the result lists themselves.
	tags := []string{
		fmt.Sprintf("result-%d", resultID),
		fmt.Sprintf("results-%d", result.StudentID),
		fmt.Sprintf("student-%d", result.StudentID),
		fmt.Sprintf("semester-%d", result.SemesterID),
		"results",
	}
	if student, err := s.studentRepo.GetByID(ctx, result.StudentID); err == nil {
		tags = append(tags, fmt.Sprintf("results-user-%d", student.UserID))
	}
	s.store.Invalidate(tags...)

	updated, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("resultID", resultID).Int64("studentID", result.StudentID).Msg("Result updated")
	return updated, nil
}
