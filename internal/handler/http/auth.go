package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/auth"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
	"github.com/Dev4EM/emp-sub000/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresAt)
	http.SetCookie(w, refreshTokenCookie)
	response.Created(w, "User logged in successfully", tokenResponse)
}

// refreshTokenFromRequest reads the refresh token from the cookie the
// login handler set, falling back to the JSON body.
func refreshTokenFromRequest(r *http.Request) auth.RefreshTokenRequest {
	var req auth.RefreshTokenRequest
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
		return req
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	return req
}

// Logout implements AuthHandler.
func (a *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	req := refreshTokenFromRequest(r)

	if err := a.authService.Logout(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	clearedCookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, clearedCookie)
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	req := refreshTokenFromRequest(r)

	tokenResponse, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse)
}

// ChangePassword implements AuthHandler.
func (a *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
