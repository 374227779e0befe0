package handler

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	timeout      time.Duration
}

// NewAuthHandler wires the auth endpoints. A non-positive timeout leaves
// request contexts without a deadline.
func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		timeout:      timeout,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.userService.Register(ctx, input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "registration successful",
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.userService.Login(ctx, input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "login successful",
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

// Logout always answers 200. A missing or unusable token just means there is
// no session to drop.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := bearerToken(c)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	h.userService.Logout(ctx, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logout successful",
	})
}

// Me must run behind RequireAuth.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.userService.Me(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}
