package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/dberrors"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// EnrollmentRepository handles database operations on the enrollments table.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an enrollment and fills in its generated ID. A unique
// constraint on (student_id, semester_id) makes re-enrollment fail cleanly.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "semester_id").
		Values(enrollment.StudentID, enrollment.SemesterID).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_semester_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).
			Int64("studentID", enrollment.StudentID).
			Int64("semesterID", enrollment.SemesterID).
			Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// ListByStudentID retrieves a student's enrollments with the semester
// relation populated, newest first.
func (r *EnrollmentRepository) ListByStudentID(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.semester_id", "e.created_at",
		"s.id", "s.name", "s.description", "s.status", "s.batch", "s.city",
		"s.mode", "s.course_id", "c.name", "s.created_at").
		From("enrollments e").
		Join("semesters s ON s.id = e.semester_id").
		Join("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrollments SQL")
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list enrollments query")
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var sem models.Semester
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.SemesterID, &e.CreatedAt,
			&sem.ID, &sem.Name, &sem.Description, &sem.Status, &sem.Batch,
			&sem.City, &sem.Mode, &sem.CourseID, &sem.CourseName, &sem.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Semester = &sem
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading enrollment rows: %w", err)
	}

	return enrollments, nil
}

// Exists reports whether a student already holds an enrollment for a semester.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, semesterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND semester_id = $2)`,
		studentID, semesterID).Scan(&exists)

	if err != nil {
		logger.Error().Err(err).
			Int64("studentID", studentID).
			Int64("semesterID", semesterID).
			Msg("Error checking enrollment existence")
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}
