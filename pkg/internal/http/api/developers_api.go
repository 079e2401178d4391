package api

import (
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/http/exts"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func listApiKey(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if keys, err := services.ListApiKeys(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(keys)
	}
}

func createApiKey(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Label     string `json:"label" validate:"required,max=64"`
		ExpiresIn int    `json:"expires_in" validate:"omitempty,min=3600"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var expiredAt *time.Time
	if data.ExpiresIn > 0 {
		expiredAt = lo.ToPtr(time.Now().Add(time.Duration(data.ExpiresIn) * time.Second))
	}

	key, secret, err := services.NewApiKey(user, data.Label, expiredAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"key":    key,
		"secret": secret,
	})
}

func deleteApiKey(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("keyId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := services.DeleteApiKey(user, uint(id)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func listWebhook(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if webhooks, err := services.ListWebhooks(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(webhooks)
	}
}

func createWebhook(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Url    string   `json:"url" validate:"required,url"`
		Secret string   `json:"secret"`
		Events []string `json:"events"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	webhook, err := services.NewWebhook(user, models.Webhook{
		Url:    data.Url,
		Secret: data.Secret,
		Events: data.Events,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(webhook)
}

func editWebhook(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("webhookId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var data struct {
		Url      string   `json:"url" validate:"required,url"`
		Events   []string `json:"events"`
		IsActive *bool    `json:"is_active"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	webhook, err := services.GetWebhook(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	webhook.Url = data.Url
	webhook.Events = data.Events
	if data.IsActive != nil {
		webhook.IsActive = *data.IsActive
	}

	if webhook, err := services.EditWebhook(webhook); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(webhook)
	}
}

func deleteWebhook(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("webhookId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	webhook, err := services.GetWebhook(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteWebhook(webhook); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func testWebhook(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("webhookId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	webhook, err := services.GetWebhook(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	delivery, err := services.QueueWebhookDelivery(webhook, models.WebhookEventTest, map[string]any{
		"message": "This is a test delivery.",
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(delivery)
}
