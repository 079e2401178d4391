package api

import (
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/http/exts"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getSubscription(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if status, err := services.GetSubscriptionStatus(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(status)
	}
}

func createCheckoutSession(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		PriceID string `json:"price_id" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if url, err := services.NewCheckoutSession(user, data.PriceID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(fiber.Map{"url": url})
	}
}

func createPortalSession(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if url, err := services.NewPortalSession(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(fiber.Map{"url": url})
	}
}
