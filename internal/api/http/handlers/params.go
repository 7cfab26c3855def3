package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/auth"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// validatable is implemented by request DTOs.
type validatable interface {
	Validate() error
}

func currentUserID(c *fiber.Ctx) (int64, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal == nil {
		return 0, apperrors.NewUnauthorized("user required")
	}
	return principal.UserID, nil
}

func parseBody(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return apperrors.FromValidation(req.Validate())
}

// parseID reads a positive integer identifier; ok is false otherwise.
func parseID(val string) (int64, bool) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
