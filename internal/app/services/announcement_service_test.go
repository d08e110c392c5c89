package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
)

type mockAnnouncementStore struct {
	listRecentFn func(ctx context.Context, limit uint64) ([]models.Announcement, error)
	createFn     func(ctx context.Context, announcement *models.Announcement) error
}

func (m *mockAnnouncementStore) ListRecent(ctx context.Context, limit uint64) ([]models.Announcement, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockAnnouncementStore) Create(ctx context.Context, announcement *models.Announcement) error {
	if m.createFn != nil {
		return m.createFn(ctx, announcement)
	}
	return nil
}

func TestListAnnouncementsEmptyTimeline(t *testing.T) {
	svc := NewAnnouncementService(&mockAnnouncementStore{}, zerolog.Nop())

	announcements, err := svc.ListAnnouncements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if announcements == nil || len(announcements) != 0 {
		t.Errorf("got %v, want an empty slice", announcements)
	}
}

func TestListAnnouncementsCapsTheRead(t *testing.T) {
	var gotLimit uint64
	repo := &mockAnnouncementStore{
		listRecentFn: func(_ context.Context, limit uint64) ([]models.Announcement, error) {
			gotLimit = limit
			return []models.Announcement{{ID: 1, Title: "Result day"}}, nil
		},
	}
	svc := NewAnnouncementService(repo, zerolog.Nop())

	announcements, err := svc.ListAnnouncements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(announcements) != 1 {
		t.Fatalf("got %d announcements", len(announcements))
	}
	if gotLimit != defaultAnnouncementLimit {
		t.Errorf("limit = %d, want %d", gotLimit, defaultAnnouncementLimit)
	}
}

func TestCreateAnnouncementPersistsAndEchoes(t *testing.T) {
	var createdRow *models.Announcement
	repo := &mockAnnouncementStore{
		createFn: func(_ context.Context, announcement *models.Announcement) error {
			announcement.ID = 7
			createdRow = announcement
			return nil
		},
	}
	svc := NewAnnouncementService(repo, zerolog.Nop())

	announcement, err := svc.CreateAnnouncement(context.Background(), "Orientation", "Hall B, 9am")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if createdRow == nil || createdRow.Title != "Orientation" || createdRow.Body != "Hall B, 9am" {
		t.Errorf("persisted row = %+v", createdRow)
	}
	if announcement.ID != 7 {
		t.Errorf("ID = %d, want the generated ID echoed back", announcement.ID)
	}
}

func TestCreateAnnouncementRepoFailure(t *testing.T) {
	boom := errors.New("insert failed")
	repo := &mockAnnouncementStore{
		createFn: func(_ context.Context, _ *models.Announcement) error {
			return boom
		},
	}
	svc := NewAnnouncementService(repo, zerolog.Nop())

	if _, err := svc.CreateAnnouncement(context.Background(), "Orientation", "Hall B, 9am"); !errors.Is(err, boom) {
		t.Fatalf("expected the repository error, got %v", err)
	}
}
