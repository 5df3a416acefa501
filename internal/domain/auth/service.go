package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, req RefreshTokenRequest) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
