package handler

import (
	"errors"

	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// writeError maps service errors to a status code. Anything unrecognised is
// a 500 with a generic body; the cause stays in the logs.
func writeError(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, autherror.ErrValidation):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, autherror.ErrEmailAlreadyInUse):
		status, message = fiber.StatusBadRequest, autherror.ErrEmailAlreadyInUse.Error()
	case errors.Is(err, autherror.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, autherror.ErrInvalidCredentials.Error()
	case errors.Is(err, autherror.ErrInvalidToken):
		status, message = fiber.StatusUnauthorized, autherror.ErrInvalidToken.Error()
	case errors.Is(err, autherror.ErrUserNotFound):
		status, message = fiber.StatusNotFound, autherror.ErrUserNotFound.Error()
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
