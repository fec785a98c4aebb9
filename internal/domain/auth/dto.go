package auth

import "github.com/attendly/attendly-backend/internal/pkg/validator"

const emailFormatMessage = "email must be a valid email address, e.g. user@example.com"

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if validator.ExceedsLength(r.Name, 255) {
		errs.Add("name", "name must not exceed 255 characters")
	}

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword(r.Password)...)

	if validator.IsEmpty(r.ConfirmPassword) {
		errs.Add("confirm_password", "confirm_password is required")
	} else if r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}

	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword(r.Password)...)

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

func validateEmail(email string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", emailFormatMessage)
	}

	return errs
}

func validatePassword(password string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(password) {
		errs.Add("password", "password is required")
	} else if len(password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs
}
