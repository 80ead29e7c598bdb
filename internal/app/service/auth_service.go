package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the identity shape returned from register and login.
type AuthUser struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// ProfileUser extends AuthUser with profile fields for the current-user endpoint.
type ProfileUser struct {
	AuthUser
	Avatar string `json:"avatar"`
}

type AuthResponse struct {
	User  AuthUser
	Token string
}

type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	tokens *security.TokenManager
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{logger: logger, users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Pre-check both unique fields so the caller gets a validation message
	// instead of a bare constraint error.
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("username or email already registered: %w", common.ErrValidation)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username or email already registered: %w", common.ErrValidation)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		Role:           model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("username or email already registered: %w", common.ErrValidation)
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))

	return &AuthResponse{
		User:  AuthUser{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
		Token: token,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))

	return &AuthResponse{
		User:  AuthUser{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
		Token: token,
	}, nil
}

// Profile returns the current user's own record.
func (s *AuthService) Profile(ctx context.Context, userID string) (*ProfileUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileUser{
		AuthUser: AuthUser{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
		Avatar:   user.Avatar,
	}, nil
}
