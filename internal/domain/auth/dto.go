package auth

import "github.com/Dev4EM/emp-sub000/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	} else if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters long",
		})
	} else if len(r.NewPassword) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password is required",
		})
	} else if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "new_password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`

	// RefreshTokenExpiresAt feeds the refresh token cookie and stays
	// out of the JSON body.
	RefreshTokenExpiresAt int64 `json:"-"`

	UserID     string  `json:"user_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Role       string  `json:"role"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
