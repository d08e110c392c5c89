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

var resultColumns = []string{
	"id", "student_id", "semester_id", "semester", "title", "marks",
	"grade", "percentile", "status", "subjects", "created_at",
}

// ResultRepository handles database operations on the results table.
type ResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanResult(row pgx.Row) (*models.Result, error) {
	var res models.Result
	err := row.Scan(
		&res.ID,
		&res.StudentID,
		&res.SemesterID,
		&res.Semester,
		&res.Title,
		&res.Marks,
		&res.Grade,
		&res.Percentile,
		&res.Status,
		&res.Subjects,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByStudentID retrieves all results for a student, newest semester first.
func (r *ResultRepository) ListByStudentID(ctx context.Context, studentID int64) ([]models.Result, error) {
	sql, args, err := r.sb.Select(resultColumns...).
		From("results").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("semester_id DESC", "created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list results SQL")
		return nil, fmt.Errorf("failed to build list results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list results query")
		return nil, fmt.Errorf("error listing results: %w", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		results = append(results, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading result rows: %w", err)
	}

	return results, nil
}

// GetByID retrieves a single result by ID.
func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	sql, args, err := r.sb.Select(resultColumns...).
		From("results").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get result SQL")
		return nil, fmt.Errorf("failed to build get result query: %w", err)
	}

	res, err := scanResult(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning result row")
		return nil, fmt.Errorf("error retrieving result: %w", err)
	}

	return res, nil
}

// Create inserts a result row and fills in its generated ID.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	sql, args, err := r.sb.Insert("results").
		Columns("student_id", "semester_id", "semester", "title", "marks",
			"grade", "percentile", "status", "subjects").
		Values(result.StudentID, result.SemesterID, result.Semester, result.Title,
			result.Marks, result.Grade, result.Percentile, result.Status, result.Subjects).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create result SQL")
		return fmt.Errorf("failed to build create result query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", result.StudentID).Msg("Error executing create result query")
		return fmt.Errorf("error creating result: %w", err)
	}

	return nil
}

// Update applies the given column values to a result row. The map keys are
// column names; only the provided columns change.
func (r *ResultRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := r.sb.Update("results").Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update result SQL")
		return fmt.Errorf("failed to build update result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing update result query")
		return fmt.Errorf("error updating result: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}

	return nil
}
