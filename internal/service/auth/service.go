package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dev4EM/emp-sub000/internal/domain/auth"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/pkg/jwt"
)

type authServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.EmployeeID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "Bearer",
		ExpiresIn:             int(time.Until(time.Unix(expiresAt, 0)).Seconds()),
		RefreshTokenExpiresAt: refreshExpiresAt,
		UserID:                account.ID,
		EmployeeID:            account.EmployeeID,
		Role:                  string(account.Role),
	}, nil
}

// Logout revokes the presented refresh token. Access tokens keep their
// short natural lifetime.
func (s *authServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.jwtService.RevokeToken(ctx, req.RefreshToken)
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.EmployeeID, account.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(time.Unix(expiresAt, 0)).Seconds()),
	}, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return err
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return auth.ErrUserNotFound
	}

	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(newHash))
}
