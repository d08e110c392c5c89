package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
)

// defaultAnnouncementLimit caps the timeline read.
const defaultAnnouncementLimit = 50

// AnnouncementStore is the announcement persistence surface.
type AnnouncementStore interface {
	ListRecent(ctx context.Context, limit uint64) ([]models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
}

// AnnouncementService handles the announcement timeline. Announcements are
// read straight from the database; they change rarely and carry no
// per-student state worth caching.
type AnnouncementService struct {
	announcementRepo AnnouncementStore
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo AnnouncementStore, logger zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// ListAnnouncements returns the most recent announcements, newest first.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.ListRecent(ctx, defaultAnnouncementLimit)
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return announcements, nil
}

// CreateAnnouncement publishes a new announcement.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, title, body string) (*models.Announcement, error) {
	announcement := &models.Announcement{Title: title, Body: body}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("announcementID", announcement.ID).Msg("Announcement published")
	return announcement, nil
}
