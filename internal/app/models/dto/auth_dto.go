package dto

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email" example:"student@quicktech.edu.pk"`
	Password        string `json:"password" binding:"required,min=8" example:"secret123"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password" example:"secret123"`
}

// LoginRequest is the sign-in payload. Redirect is an optional deep link the
// client wants to land on after sign-in; it is echoed back, never followed
// server-side.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Redirect string `json:"redirect,omitempty"`
}

// RefreshTokenRequest rotates a refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest dispatches a password reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	Redirect         string `json:"redirect" example:"/dashboard"`
}

// RegisterResponse is returned after a successful sign-up.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
