package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

// LectureStore is the lecture persistence surface.
type LectureStore interface {
	ListAll(ctx context.Context) ([]models.Lecture, error)
}

// LectureService handles cached lecture reads. Lectures turn over faster
// than the rest of the catalogue, so they carry the shorter TTL.
type LectureService struct {
	lectureRepo LectureStore
	store       *cache.Store
	logger      zerolog.Logger
}

// NewLectureService creates a new LectureService
func NewLectureService(lectureRepo LectureStore, store *cache.Store, logger zerolog.Logger) *LectureService {
	return &LectureService{
		lectureRepo: lectureRepo,
		store:       store,
		logger:      logger,
	}
}

// ListLectures returns every lecture, newest first.
func (s *LectureService) ListLectures(ctx context.Context) ([]models.Lecture, error) {
	return cache.Fetch(ctx, s.store, "lectures", cacheTTLLectures, []string{"lectures"},
		func(ctx context.Context) ([]models.Lecture, error) {
			return s.lectureRepo.ListAll(ctx)
		})
}
