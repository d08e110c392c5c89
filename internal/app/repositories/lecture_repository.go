package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// LectureRepository handles database operations on the lectures table.
type LectureRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLectureRepository creates a new LectureRepository
func NewLectureRepository(db *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListAll retrieves every lecture, newest first.
func (r *LectureRepository) ListAll(ctx context.Context) ([]models.Lecture, error) {
	sql, args, err := r.sb.Select("id", "title", "description", "course_name", "video_url", "created_at").
		From("lectures").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list lectures SQL")
		return nil, fmt.Errorf("failed to build list lectures query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lectures query")
		return nil, fmt.Errorf("error listing lectures: %w", err)
	}
	defer rows.Close()

	var lectures []models.Lecture
	for rows.Next() {
		var l models.Lecture
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.CourseName, &l.VideoURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning lecture row: %w", err)
		}
		lectures = append(lectures, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading lecture rows: %w", err)
	}

	return lectures, nil
}
