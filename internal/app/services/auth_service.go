package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/auth"
	"github.com/quicktech/studentportal/internal/pkg/email"
)

// passwordResetTokenTTL bounds how long a reset link stays valid.
const passwordResetTokenTTL = time.Hour

// AccountStore is the account persistence surface the auth flows need.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	EmailExists(ctx context.Context, emails ...string) (bool, error)
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, accountID int64) error
}

// ProfileEmailStore checks profile rows during registration; an email already
// present on a student profile blocks sign-up the same way an account does.
type ProfileEmailStore interface {
	EmailExists(ctx context.Context, emails ...string) (bool, error)
}

// RefreshTokenStore is the refresh token persistence surface.
type RefreshTokenStore interface {
	CreateToken(ctx context.Context, token string, accountID int64, expiresAt time.Time) error
	GetTokenAccount(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllAccountTokens(ctx context.Context, accountID int64) error
}

// ResetTokenStore is the password reset token persistence surface.
type ResetTokenStore interface {
	CreateToken(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error)
	MarkTokenAsUsed(ctx context.Context, token string) error
	DeleteTokensByAccountID(ctx context.Context, accountID int64) error
}

// AuthService handles authentication operations
type AuthService struct {
	accountRepo    AccountStore
	studentRepo    ProfileEmailStore
	tokenRepo      RefreshTokenStore
	resetTokenRepo ResetTokenStore
	jwtService     *auth.JWTService
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo AccountStore,
	studentRepo ProfileEmailStore,
	tokenRepo RefreshTokenStore,
	resetTokenRepo ResetTokenStore,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo:    accountRepo,
		studentRepo:    studentRepo,
		tokenRepo:      tokenRepo,
		resetTokenRepo: resetTokenRepo,
		jwtService:     jwtService,
		emailService:   emailService,
		logger:         logger,
	}
}

// gmailVariant returns the gmail form of an address: gmail addresses map to
// themselves, anything else maps to its local part at gmail.com. Registration
// probes both so a student cannot re-register an institute address under its
// personal gmail twin.
func gmailVariant(address string) string {
	address = strings.ToLower(address)
	if strings.HasSuffix(address, "@gmail.com") {
		return address
	}
	local, _, _ := strings.Cut(address, "@")
	return local + "@gmail.com"
}

// emailTaken reports whether the email (or its gmail variant) already appears
// on an account or on a student profile row.
func (s *AuthService) emailTaken(ctx context.Context, address string) (bool, error) {
	probes := []string{address}
	if variant := gmailVariant(address); variant != address {
		probes = append(probes, variant)
	}

	taken, err := s.accountRepo.EmailExists(ctx, probes...)
	if err != nil {
		return false, err
	}
	if taken {
		return true, nil
	}

	return s.studentRepo.EmailExists(ctx, probes...)
}

// Register creates a new portal account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	address := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.emailTaken(ctx, address)
	if err != nil {
		s.logger.Error().Err(err).Str("email", address).Msg("Failed to check email availability")
		return nil, err
	}
	if taken {
		return nil, apperrors.NewCustomError(apperrors.ErrUserAlreadyExists, "User already exists. Please log in.")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	account := &models.Account{
		Email:    address,
		Password: passwordHash,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserAlreadyExists, "User already exists. Please log in.")
		}
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Str("email", address).Msg("Account registered")

	return &dto.RegisterResponse{
		ID:    account.ID,
		Email: account.Email,
	}, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	address := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accountRepo.GetByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password, account existence stays private.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}
	tokens.Redirect = req.Redirect

	if err := s.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		// Login still succeeds, the stamp is informational.
		s.logger.Warn().Err(err).Int64("accountID", account.ID).Msg("Failed to stamp last login")
	}

	return tokens, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	accountID, err := s.tokenRepo.GetTokenAccount(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Logout revokes a refresh token. Unknown tokens are not an error; the
// session is gone either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// ForgotPassword dispatches a reset email. A missing account is reported as
// success so the endpoint cannot be used to enumerate addresses.
func (s *AuthService) ForgotPassword(ctx context.Context, address string) error {
	address = strings.ToLower(strings.TrimSpace(address))

	account, err := s.accountRepo.GetByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", address).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.resetTokenRepo.DeleteTokensByAccountID(ctx, account.ID); err != nil {
		s.logger.Warn().Err(err).Int64("accountID", account.ID).Msg("Failed to clear stale reset tokens")
	}

	if err := s.resetTokenRepo.CreateToken(ctx, account.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(account.Email, "", token); err != nil {
		s.logger.Error().Err(err).Int64("accountID", account.ID).Msg("Failed to send password reset email")
		return err
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
// Every live session is revoked alongside.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	accountID, expiresAt, used, err := s.resetTokenRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}

	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if expiresAt.Before(time.Now()) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, passwordHash); err != nil {
		return err
	}

	if err := s.resetTokenRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllAccountTokens(ctx, accountID); err != nil {
		s.logger.Warn().Err(err).Int64("accountID", accountID).Msg("Failed to revoke sessions after password reset")
	}

	s.logger.Info().Int64("accountID", accountID).Msg("Password reset completed")
	return nil
}

// issueTokens generates a token pair and persists the refresh half.
func (s *AuthService) issueTokens(ctx context.Context, account *models.Account) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(account)
	if err != nil {
		s.logger.Error().Err(err).Int64("accountID", account.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, account.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
