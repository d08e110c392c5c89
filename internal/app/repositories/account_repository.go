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
	"github.com/quicktech/studentportal/internal/pkg/dberrors"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// AccountRepository handles database operations on the registered_students table.
type AccountRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new portal account and fills in its generated ID.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("registered_students").
		Columns("email", "password", "is_active", "created_at", "updated_at").
		Values(account.Email, account.Password, true, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create account SQL")
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&account.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "registered_students_email_key") {
			return apperrors.ErrUserAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error executing create account query")
		return fmt.Errorf("error creating account: %w", err)
	}

	account.IsActive = true
	account.CreatedAt = now
	account.UpdatedAt = now
	return nil
}

// GetByEmail retrieves an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "is_active", "last_login_at", "created_at", "updated_at").
		From("registered_students").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get account by email SQL")
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	var account models.Account
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&account.ID,
		&account.Email,
		&account.Password,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning account row")
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "is_active", "last_login_at", "created_at", "updated_at").
		From("registered_students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get account by ID SQL")
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	var account models.Account
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&account.ID,
		&account.Email,
		&account.Password,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning account row")
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// EmailExists checks whether any of the given emails already has an account.
func (r *AccountRepository) EmailExists(ctx context.Context, emails ...string) (bool, error) {
	if len(emails) == 0 {
		return false, nil
	}

	sql, args, err := r.sb.Select("1").
		From("registered_students").
		Where(squirrel.Eq{"email": emails}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building account email existence SQL")
		return false, fmt.Errorf("failed to build email existence query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Msg("Error checking account email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return true, nil
}

// UpdatePassword replaces the stored password hash for an account.
func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error {
	sql, args, err := r.sb.Update("registered_students").
		Set("password", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update password SQL")
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the account's last login time.
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, accountID int64) error {
	sql, args, err := r.sb.Update("registered_students").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update last login SQL")
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error stamping last login")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}
