package security

import (
	"errors"
	"time"

	"inkwell/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the signed identity assertions carried in
// Authorization headers. The secret and lifetime come from process-wide
// configuration; there is no rotation.
type TokenManager struct {
	auth      *jwtauth.JWTAuth
	secret    []byte
	expiresIn time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		auth:      jwtauth.New("HS256", cfg.JWTSecret, nil),
		secret:    cfg.JWTSecret,
		expiresIn: cfg.JWTExpiresIn,
	}
}

// JWTAuth exposes the verifier used by the router-level jwtauth middleware.
func (tm *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return tm.auth
}

func (tm *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tm.expiresIn).Unix(),
	}
	_, tokenString, err := tm.auth.Encode(claims)
	return tokenString, err
}

// Verify parses and validates a token, returning the embedded user id.
// Malformed tokens, signature mismatches and expired tokens all collapse to
// the same error; callers must not learn which check failed.
func (tm *TokenManager) Verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token")
	}
	return GetUserIDFromClaims(claims)
}

// GetUserIDFromClaims extracts the subject user id from verified claims; used
// by the middleware after the router-level verifier has run.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
