package api

import (
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const historyDateLayout = "2006-01-02"

var newHistoryAggregator = func() *services.HistoryAggregator {
	return services.NewHistoryAggregator(services.NewGormHistoryStore(database.C))
}

// parseHistoryDate turns an optional ISO date query parameter into a
// range bound; the "to" bound is stretched to the end of that day.
func parseHistoryDate(raw string, endOfDay bool) (*time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	parsed, err := time.Parse(historyDateLayout, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}

func getMeetingHistory(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	from, err := parseHistoryDate(c.Query("from"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid 'from' date parameter",
		})
	}
	to, err := parseHistoryDate(c.Query("to"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid 'to' date parameter",
		})
	}

	summaries, err := newHistoryAggregator().Aggregate(user.Email, from, to)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when aggregating meeting history...")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(summaries)
}
