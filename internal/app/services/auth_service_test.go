package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/auth"
)

type mockAccountStore struct {
	createFn          func(ctx context.Context, account *models.Account) error
	getByEmailFn      func(ctx context.Context, email string) (*models.Account, error)
	getByIDFn         func(ctx context.Context, id int64) (*models.Account, error)
	emailExistsFn     func(ctx context.Context, emails ...string) (bool, error)
	updatePasswordFn  func(ctx context.Context, accountID int64, hash string) error
	updateLastLoginFn func(ctx context.Context, accountID int64) error
}

func (m *mockAccountStore) Create(ctx context.Context, account *models.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockAccountStore) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockAccountStore) EmailExists(ctx context.Context, emails ...string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, emails...)
	}
	return false, nil
}

func (m *mockAccountStore) UpdatePassword(ctx context.Context, accountID int64, hash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, accountID, hash)
	}
	return nil
}

func (m *mockAccountStore) UpdateLastLogin(ctx context.Context, accountID int64) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, accountID)
	}
	return nil
}

type mockProfileEmailStore struct {
	emailExistsFn func(ctx context.Context, emails ...string) (bool, error)
}

func (m *mockProfileEmailStore) EmailExists(ctx context.Context, emails ...string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, emails...)
	}
	return false, nil
}

type mockRefreshTokenStore struct {
	createTokenFn     func(ctx context.Context, token string, accountID int64, expiresAt time.Time) error
	getTokenAccountFn func(ctx context.Context, token string) (int64, error)
	revokeTokenFn     func(ctx context.Context, token string) error
	revokeAllFn       func(ctx context.Context, accountID int64) error
}

func (m *mockRefreshTokenStore) CreateToken(ctx context.Context, token string, accountID int64, expiresAt time.Time) error {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, token, accountID, expiresAt)
	}
	return nil
}

func (m *mockRefreshTokenStore) GetTokenAccount(ctx context.Context, token string) (int64, error) {
	if m.getTokenAccountFn != nil {
		return m.getTokenAccountFn(ctx, token)
	}
	return 0, apperrors.ErrTokenNotFound
}

func (m *mockRefreshTokenStore) RevokeToken(ctx context.Context, token string) error {
	if m.revokeTokenFn != nil {
		return m.revokeTokenFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenStore) RevokeAllAccountTokens(ctx context.Context, accountID int64) error {
	if m.revokeAllFn != nil {
		return m.revokeAllFn(ctx, accountID)
	}
	return nil
}

type mockResetTokenStore struct {
	createTokenFn  func(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	getTokenInfoFn func(ctx context.Context, token string) (int64, time.Time, bool, error)
	markUsedFn     func(ctx context.Context, token string) error
	deleteByAccFn  func(ctx context.Context, accountID int64) error
}

func (m *mockResetTokenStore) CreateToken(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, accountID, token, expiresAt)
	}
	return nil
}

func (m *mockResetTokenStore) GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error) {
	if m.getTokenInfoFn != nil {
		return m.getTokenInfoFn(ctx, token)
	}
	return 0, time.Time{}, false, apperrors.ErrInvalidPasswordResetToken
}

func (m *mockResetTokenStore) MarkTokenAsUsed(ctx context.Context, token string) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, token)
	}
	return nil
}

func (m *mockResetTokenStore) DeleteTokensByAccountID(ctx context.Context, accountID int64) error {
	if m.deleteByAccFn != nil {
		return m.deleteByAccFn(ctx, accountID)
	}
	return nil
}

type mockEmailService struct {
	sentTo    string
	sentToken string
	err       error
}

func (m *mockEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	m.sentTo = toEmail
	m.sentToken = token
	return m.err
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthService(accounts *mockAccountStore, profiles *mockProfileEmailStore, tokens *mockRefreshTokenStore, resets *mockResetTokenStore, mail *mockEmailService) *AuthService {
	if accounts == nil {
		accounts = &mockAccountStore{}
	}
	if profiles == nil {
		profiles = &mockProfileEmailStore{}
	}
	if tokens == nil {
		tokens = &mockRefreshTokenStore{}
	}
	if resets == nil {
		resets = &mockResetTokenStore{}
	}
	if mail == nil {
		mail = &mockEmailService{}
	}
	return NewAuthService(accounts, profiles, tokens, resets, testJWTService(), mail, zerolog.Nop())
}

func TestGmailVariant(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ahmed@quicktech.edu.pk", "ahmed@gmail.com"},
		{"ahmed@gmail.com", "ahmed@gmail.com"},
		{"Ahmed@Gmail.COM", "ahmed@gmail.com"},
		{"a.b@outlook.com", "a.b@gmail.com"},
	}
	for _, tt := range tests {
		if got := gmailVariant(tt.in); got != tt.want {
			t.Errorf("gmailVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRegisterSuccess(t *testing.T) {
	accounts := &mockAccountStore{
		createFn: func(_ context.Context, account *models.Account) error {
			account.ID = 12
			return nil
		},
	}
	svc := newAuthService(accounts, nil, nil, nil, nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "New.Student@Quicktech.edu.pk",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != 12 {
		t.Errorf("ID = %d, want 12", resp.ID)
	}
	if resp.Email != "new.student@quicktech.edu.pk" {
		t.Errorf("email not normalized: %q", resp.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := &mockAccountStore{
		emailExistsFn: func(_ context.Context, emails ...string) (bool, error) {
			for _, e := range emails {
				if e == "taken@quicktech.edu.pk" {
					return true, nil
				}
			}
			return false, nil
		},
	}
	svc := newAuthService(accounts, nil, nil, nil, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "taken@quicktech.edu.pk", Password: "secret123"})
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || custom.Message != "User already exists. Please log in." {
		t.Errorf("expected the sign-in hint message, got %v", err)
	}
}

func TestRegisterGmailVariantTakenOnProfile(t *testing.T) {
	// The account table is clean, but a student profile row carries the gmail
	// twin of the address being registered.
	profiles := &mockProfileEmailStore{
		emailExistsFn: func(_ context.Context, emails ...string) (bool, error) {
			for _, e := range emails {
				if e == "ahmed@gmail.com" {
					return true, nil
				}
			}
			return false, nil
		},
	}
	svc := newAuthService(nil, profiles, nil, nil, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "ahmed@quicktech.edu.pk", Password: "secret123"})
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		t.Fatalf("gmail variant on a profile row must block registration, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}

	var stampedID int64
	accounts := &mockAccountStore{
		getByEmailFn: func(_ context.Context, email string) (*models.Account, error) {
			return &models.Account{ID: 7, Email: email, Password: hash, IsActive: true}, nil
		},
		updateLastLoginFn: func(_ context.Context, accountID int64) error {
			stampedID = accountID
			return nil
		},
	}

	var storedRefresh string
	tokens := &mockRefreshTokenStore{
		createTokenFn: func(_ context.Context, token string, accountID int64, _ time.Time) error {
			storedRefresh = token
			return nil
		},
	}

	svc := newAuthService(accounts, nil, tokens, nil, nil)
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@quicktech.edu.pk",
		Password: "secret123",
		Redirect: "/dashboard",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.AccessToken == "" {
		t.Error("missing access token")
	}
	if resp.RefreshToken == "" || resp.RefreshToken != storedRefresh {
		t.Error("refresh token must be persisted server-side")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token type = %q", resp.TokenType)
	}
	if resp.Redirect != "/dashboard" {
		t.Errorf("redirect = %q, the deep link must be echoed back", resp.Redirect)
	}
	if stampedID != 7 {
		t.Errorf("last login stamped for account %d, want 7", stampedID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := auth.HashPassword("secret123")
	accounts := &mockAccountStore{
		getByEmailFn: func(_ context.Context, email string) (*models.Account, error) {
			return &models.Account{ID: 7, Email: email, Password: hash, IsActive: true}, nil
		},
	}
	svc := newAuthService(accounts, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "x@y.z", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newAuthService(nil, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@y.z", Password: "whatever"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like a wrong password, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	hash, _ := auth.HashPassword("secret123")
	accounts := &mockAccountStore{
		getByEmailFn: func(_ context.Context, email string) (*models.Account, error) {
			return &models.Account{ID: 7, Email: email, Password: hash, IsActive: false}, nil
		},
	}
	svc := newAuthService(accounts, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "x@y.z", Password: "secret123"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	accounts := &mockAccountStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Account, error) {
			return &models.Account{ID: id, Email: "x@y.z", IsActive: true}, nil
		},
	}

	var revoked, created string
	tokens := &mockRefreshTokenStore{
		getTokenAccountFn: func(_ context.Context, token string) (int64, error) {
			return 7, nil
		},
		revokeTokenFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
		createTokenFn: func(_ context.Context, token string, _ int64, _ time.Time) error {
			created = token
			return nil
		},
	}

	svc := newAuthService(accounts, nil, tokens, nil, nil)
	resp, err := svc.RefreshToken(context.Background(), "old-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if revoked != "old-token" {
		t.Error("presented token must be revoked")
	}
	if created == "" || created == "old-token" {
		t.Error("a fresh refresh token must be issued")
	}
	if resp.RefreshToken != created {
		t.Error("response must carry the new token")
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	tokens := &mockRefreshTokenStore{
		getTokenAccountFn: func(_ context.Context, token string) (int64, error) {
			return 0, apperrors.ErrTokenExpired
		},
	}
	svc := newAuthService(nil, nil, tokens, nil, nil)

	_, err := svc.RefreshToken(context.Background(), "stale")
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestLogoutUnknownTokenIsFine(t *testing.T) {
	tokens := &mockRefreshTokenStore{
		revokeTokenFn: func(_ context.Context, token string) error {
			return apperrors.ErrTokenNotFound
		},
	}
	svc := newAuthService(nil, nil, tokens, nil, nil)

	if err := svc.Logout(context.Background(), "gone"); err != nil {
		t.Errorf("logout of an unknown token must succeed, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	mail := &mockEmailService{}
	svc := newAuthService(nil, nil, nil, nil, mail)

	if err := svc.ForgotPassword(context.Background(), "nobody@y.z"); err != nil {
		t.Fatalf("unknown email must not surface an error, got %v", err)
	}
	if mail.sentTo != "" {
		t.Error("no email should be dispatched for unknown addresses")
	}
}

func TestForgotPasswordSendsToken(t *testing.T) {
	accounts := &mockAccountStore{
		getByEmailFn: func(_ context.Context, email string) (*models.Account, error) {
			return &models.Account{ID: 3, Email: email, IsActive: true}, nil
		},
	}

	var storedToken string
	resets := &mockResetTokenStore{
		createTokenFn: func(_ context.Context, accountID int64, token string, expiresAt time.Time) error {
			storedToken = token
			if remaining := time.Until(expiresAt); remaining > passwordResetTokenTTL || remaining < passwordResetTokenTTL-time.Minute {
				t.Errorf("token TTL = %v, want about %v", remaining, passwordResetTokenTTL)
			}
			return nil
		},
	}

	mail := &mockEmailService{}
	svc := newAuthService(accounts, nil, nil, resets, mail)

	if err := svc.ForgotPassword(context.Background(), "student@quicktech.edu.pk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedToken == "" {
		t.Fatal("reset token must be persisted")
	}
	if mail.sentToken != storedToken {
		t.Error("emailed token must match the stored one")
	}
	if mail.sentTo != "student@quicktech.edu.pk" {
		t.Errorf("email sent to %q", mail.sentTo)
	}
}

func TestResetPasswordUsedToken(t *testing.T) {
	resets := &mockResetTokenStore{
		getTokenInfoFn: func(_ context.Context, token string) (int64, time.Time, bool, error) {
			return 3, time.Now().Add(time.Hour), true, nil
		},
	}
	svc := newAuthService(nil, nil, nil, resets, nil)

	err := svc.ResetPassword(context.Background(), "tok", "newsecret1")
	if !errors.Is(err, apperrors.ErrPasswordResetTokenUsed) {
		t.Fatalf("expected ErrPasswordResetTokenUsed, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	resets := &mockResetTokenStore{
		getTokenInfoFn: func(_ context.Context, token string) (int64, time.Time, bool, error) {
			return 3, time.Now().Add(-time.Minute), false, nil
		},
	}
	svc := newAuthService(nil, nil, nil, resets, nil)

	err := svc.ResetPassword(context.Background(), "tok", "newsecret1")
	if !errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
		t.Fatalf("expected ErrInvalidPasswordResetToken, got %v", err)
	}
}

func TestResetPasswordSuccess(t *testing.T) {
	var newHash string
	accounts := &mockAccountStore{
		updatePasswordFn: func(_ context.Context, accountID int64, hash string) error {
			newHash = hash
			return nil
		},
	}

	marked := false
	resets := &mockResetTokenStore{
		getTokenInfoFn: func(_ context.Context, token string) (int64, time.Time, bool, error) {
			return 3, time.Now().Add(30 * time.Minute), false, nil
		},
		markUsedFn: func(_ context.Context, token string) error {
			marked = true
			return nil
		},
	}

	sessionsRevoked := false
	tokens := &mockRefreshTokenStore{
		revokeAllFn: func(_ context.Context, accountID int64) error {
			sessionsRevoked = true
			return nil
		},
	}

	svc := newAuthService(accounts, nil, tokens, resets, nil)
	if err := svc.ResetPassword(context.Background(), "tok", "newsecret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !auth.CheckPassword(newHash, "newsecret1") {
		t.Error("stored hash must verify against the new password")
	}
	if !marked {
		t.Error("token must be single-use")
	}
	if !sessionsRevoked {
		t.Error("live sessions must be revoked after a reset")
	}
}
