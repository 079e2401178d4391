package api

import (
	"strings"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func authMiddleware(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	token = strings.TrimPrefix(token, "Bearer ")
	if len(token) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	user, err := services.Authenticate(c.UserContext(), token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	c.Locals("user", user)
	return c.Next()
}

func getUserinfo(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	return c.JSON(user)
}
