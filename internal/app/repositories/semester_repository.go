package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// SemesterRepository handles database operations on the semesters and
// courses tables.
type SemesterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// semesterSelect is the base query joining the course name onto each row.
func (r *SemesterRepository) semesterSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.name", "s.description", "s.status", "s.batch", "s.city",
		"s.mode", "s.course_id", "c.name", "s.created_at").
		From("semesters s").
		Join("courses c ON c.id = s.course_id")
}

func scanSemester(row pgx.Row) (*models.Semester, error) {
	var sem models.Semester
	err := row.Scan(
		&sem.ID,
		&sem.Name,
		&sem.Description,
		&sem.Status,
		&sem.Batch,
		&sem.City,
		&sem.Mode,
		&sem.CourseID,
		&sem.CourseName,
		&sem.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sem, nil
}

// ListAll retrieves every semester with its course name joined in.
func (r *SemesterRepository) ListAll(ctx context.Context) ([]models.Semester, error) {
	sql, args, err := r.semesterSelect().OrderBy("s.id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list semesters SQL")
		return nil, fmt.Errorf("failed to build list semesters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list semesters query")
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	var semesters []models.Semester
	for rows.Next() {
		sem, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, *sem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading semester rows: %w", err)
	}

	return semesters, nil
}

// GetByID retrieves a semester by ID with its course name joined in.
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	sql, args, err := r.semesterSelect().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get semester SQL")
		return nil, fmt.Errorf("failed to build get semester query: %w", err)
	}

	sem, err := scanSemester(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning semester row")
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return sem, nil
}

// ListCourses retrieves all courses.
func (r *SemesterRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at").
		From("courses").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading course rows: %w", err)
	}

	return courses, nil
}
