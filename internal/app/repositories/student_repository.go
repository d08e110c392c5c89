package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// studentColumns lists the students table columns in scan order.
var studentColumns = []string{
	"id", "user_id", "full_name", "father_name", "student_id", "roll_no",
	"city", "gender", "email", "currently", "avatar", "course", "batch",
	"admit_date", "created_at", "updated_at",
}

// StudentRepository handles database operations on the students table.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.FullName,
		&s.FatherName,
		&s.StudentID,
		&s.RollNo,
		&s.City,
		&s.Gender,
		&s.Email,
		&s.Currently,
		&s.Avatar,
		&s.Course,
		&s.Batch,
		&s.AdmitDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByUserID retrieves the profile row owned by an account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by user ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByID retrieves a profile row by its primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// Insert creates the profile row for an account and fills in its generated ID.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "full_name", "father_name", "student_id", "roll_no",
			"city", "gender", "email", "currently", "avatar", "course", "batch",
			"admit_date", "created_at", "updated_at").
		Values(student.UserID, student.FullName, student.FatherName, student.StudentID,
			student.RollNo, student.City, student.Gender, student.Email, student.Currently,
			student.Avatar, student.Course, student.Batch, student.AdmitDate, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building insert student SQL")
		return fmt.Errorf("failed to build insert student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing insert student query")
		return fmt.Errorf("error inserting student: %w", err)
	}

	student.CreatedAt = now
	student.UpdatedAt = now
	return nil
}

// UpdateByUserID updates the profile row owned by an account and reports how
// many rows matched. Zero rows means no profile exists yet; the service layer
// falls back to an insert in that case.
func (r *StudentRepository) UpdateByUserID(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Update("students").
		Set("full_name", student.FullName).
		Set("father_name", student.FatherName).
		Set("student_id", student.StudentID).
		Set("roll_no", student.RollNo).
		Set("city", student.City).
		Set("gender", student.Gender).
		Set("email", student.Email).
		Set("currently", student.Currently).
		Set("avatar", student.Avatar).
		Set("course", student.Course).
		Set("batch", student.Batch).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": student.UserID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return 0, fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing update student query")
		return 0, fmt.Errorf("error updating student: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// UpdateAvatar stores the avatar path for an account's profile row.
func (r *StudentRepository) UpdateAvatar(ctx context.Context, userID int64, avatarPath string) error {
	sql, args, err := r.sb.Update("students").
		Set("avatar", avatarPath).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update avatar SQL")
		return fmt.Errorf("failed to build update avatar query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update avatar query")
		return fmt.Errorf("error updating avatar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// EmailExists checks whether any of the given emails appears on a profile row.
// Registration treats a match here the same as an existing account.
func (r *StudentRepository) EmailExists(ctx context.Context, emails ...string) (bool, error) {
	if len(emails) == 0 {
		return false, nil
	}

	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"email": emails}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building student email existence SQL")
		return false, fmt.Errorf("failed to build email existence query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Msg("Error checking student email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return true, nil
}
