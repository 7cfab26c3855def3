package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodging-service/internal/auth"
	"github.com/spec-kit/lodging-service/internal/config"
	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// AuthService coordinates registration and sign-in flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterUser creates a new user account.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SignIn verifies credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	value, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}
	session := &domain.Session{UserID: user.ID, Token: value}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return user, &domain.Token{Value: value, UserID: user.ID, ExpiresAt: exp, IssuedAt: session.CreatedAt}, nil
}
