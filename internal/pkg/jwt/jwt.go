package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/redis/go-redis/v9"

	"github.com/Dev4EM/emp-sub000/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	redis                      *redis.Client
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string, redisClient *redis.Client) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		redis:                      redisClient,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": j.returnValueOrNil(employeeID),
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    "refresh",
	})
	return tokenString, expiresAt, err
}

// ValidateRefreshToken decodes a refresh token, checks its type and the
// revocation list, and returns the owning user ID.
func (j *JWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (userID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", jwt.ErrInvalidJWT()
	}

	revoked, err := j.IsTokenRevoked(ctx, tokenString)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", errors.New("refresh token has been revoked")
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken blacklists a refresh token in Redis until it would have
// expired on its own.
func (j *JWTService) RevokeToken(ctx context.Context, token string) error {
	ttl, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return err
	}
	if decoded, decodeErr := j.tokenAuth.Decode(token); decodeErr == nil {
		if remaining := time.Until(decoded.Expiration()); remaining > 0 {
			ttl = remaining
		}
	}
	return j.redis.Set(ctx, revokedKey(token), time.Now().Unix(), ttl).Err()
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	err := j.redis.Get(ctx, revokedKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func revokedKey(token string) string {
	return "auth:revoked:" + token
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	} else {
		return *value
	}
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	userID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}
