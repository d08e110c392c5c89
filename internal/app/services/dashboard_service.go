package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
)

// DashboardService aggregates the dashboard read: profile plus results in a
// single response. A section that fails to load degrades to empty instead of
// failing the whole page.
type DashboardService struct {
	studentService *StudentService
	resultService  *ResultService
	avatars        AvatarStore
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	studentService *StudentService,
	resultService *ResultService,
	avatars AvatarStore,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		studentService: studentService,
		resultService:  resultService,
		avatars:        avatars,
		logger:         logger,
	}
}

// GetDashboard builds the aggregated dashboard response for an account.
func (s *DashboardService) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	response := &dto.DashboardResponse{
		AvatarURL: s.avatars.DefaultURL(),
		Results:   []models.Result{},
	}

	profile, err := s.studentService.GetProfile(ctx, userID)
	switch {
	case err == nil:
		response.Profile = profile
		response.AvatarURL = profile.AvatarURL
	case errors.Is(err, apperrors.ErrStudentNotFound):
		// First sign-in, no profile saved yet.
	default:
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Dashboard profile section failed to load")
	}

	results, err := s.resultService.ListResults(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Dashboard results section failed to load")
	} else {
		response.Results = results
		for _, res := range results {
			switch res.Status {
			case models.ResultStatusPassed:
				response.ResultsPassed++
			case models.ResultStatusFailed:
				response.ResultsFailed++
			}
		}
	}
	if response.Results == nil {
		response.Results = []models.Result{}
	}

	return response, nil
}
