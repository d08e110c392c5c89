package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// AnnouncementRepository handles database operations on the announcements table.
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListRecent retrieves announcements, newest first, capped at limit.
func (r *AnnouncementRepository) ListRecent(ctx context.Context, limit uint64) ([]models.Announcement, error) {
	builder := r.sb.Select("id", "title", "body", "created_at").
		From("announcements").
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list announcements SQL")
		return nil, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list announcements query")
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading announcement rows: %w", err)
	}

	return announcements, nil
}

// Create inserts an announcement and fills in its generated ID.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "body").
		Values(announcement.Title, announcement.Body).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create announcement SQL")
		return fmt.Errorf("failed to build create announcement query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&announcement.ID, &announcement.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create announcement query")
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}
