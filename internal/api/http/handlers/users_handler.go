package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/dto"
	"github.com/spec-kit/lodging-service/internal/domain"
)

// AuthService is the account surface the handler needs.
type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, *domain.Token, error)
}

// UsersHandler exposes sign-up and sign-in.
type UsersHandler struct {
	auth AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// SignUp handles POST /auth/sign-up.
func (h *UsersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.RegisterUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{ID: user.ID, Email: user.Email})
}

// SignIn handles POST /auth/sign-in.
func (h *UsersHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.SignInResponse{
		User:      dto.UserResponse{ID: user.ID, Email: user.Email},
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}
