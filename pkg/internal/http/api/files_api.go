package api

import (
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/http/exts"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listSharedFile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if files, err := services.ListSharedFiles(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(files)
	}
}

func createSharedFile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		FileName    string `json:"file_name" validate:"required,max=256"`
		Size        int64  `json:"size" validate:"required,min=1"`
		ContentType string `json:"content_type"`
		MeetingID   *uint  `json:"meeting_id"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	file, uploadURL, err := services.NewSharedFile(user, models.SharedFile{
		FileName:    data.FileName,
		Size:        data.Size,
		ContentType: data.ContentType,
		MeetingID:   data.MeetingID,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"file":       file,
		"upload_url": uploadURL,
	})
}

func completeSharedFileUpload(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("fileId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	file, err := services.GetSharedFile(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if file, err := services.ConfirmSharedFileUpload(file); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		return c.JSON(file)
	}
}

func getSharedFileDownloadURL(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("fileId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	file, err := services.GetSharedFile(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !file.IsUploaded {
		return fiber.NewError(fiber.StatusBadRequest, "file upload has not been completed")
	}

	if url, err := services.GetSharedFileURL(file); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(fiber.Map{"url": url})
	}
}

func deleteSharedFile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("fileId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	file, err := services.GetSharedFile(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteSharedFile(file); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}
