package api

import (
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func listMeeting(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	if meetings, err := services.ListMeetings(take, offset); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(meetings)
	}
}

func getMeeting(c *fiber.Ctx) error {
	id, err := c.ParamsInt("meetingId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if meeting, err := services.GetMeeting(uint(id)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else {
		return c.JSON(meeting)
	}
}

func listMeetingParticipants(c *fiber.Ctx) error {
	id, err := c.ParamsInt("meetingId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	meeting, err := services.GetMeeting(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if participants, err := services.GetMeetingParticipants(meeting); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		return c.JSON(participants)
	}
}

func exchangeMeetingToken(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("meetingId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	meeting, err := services.GetMeeting(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if meeting.Status != models.MeetingStatusOngoing {
		return fiber.NewError(fiber.StatusBadRequest, "meeting has already ended")
	}

	tk, err := services.EncodeMeetingToken(user, meeting)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(fiber.Map{
			"token":    tk,
			"endpoint": viper.GetString("meet.endpoint"),
		})
	}
}
