package api

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoryDate(t *testing.T) {
	bound, err := parseHistoryDate("", false)
	require.NoError(t, err)
	assert.Nil(t, bound)

	bound, err = parseHistoryDate("2025-03-10", false)
	require.NoError(t, err)
	require.NotNil(t, bound)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *bound)

	bound, err = parseHistoryDate("2025-03-10", true)
	require.NoError(t, err)
	require.NotNil(t, bound)
	// Stretched to the last instant of the day.
	assert.Equal(t, 23, bound.Hour())
	assert.Equal(t, 59, bound.Minute())

	_, err = parseHistoryDate("not-a-date", false)
	assert.Error(t, err)
}

func TestGetMeetingHistoryRejectsMalformedDates(t *testing.T) {
	app := fiber.New()
	app.Get("/api/meeting-history", func(c *fiber.Ctx) error {
		c.Locals("user", models.Account{Email: "t@x.com"})
		return getMeetingHistory(c)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/meeting-history?from=not-a-date", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "Invalid 'from' date parameter")

	res, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/meeting-history?to=2025-13-45", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body, _ = io.ReadAll(res.Body)
	assert.Contains(t, string(body), "Invalid 'to' date parameter")
}

type brokenHistoryStore struct{}

func (v brokenHistoryStore) ListMeetingsStartedBetween(from, to *time.Time) ([]models.Meeting, error) {
	return nil, errors.New("pq: connection refused on host db-internal.example")
}

func (v brokenHistoryStore) ListMeetingEvents(meetingIDs []uint) ([]models.MeetingEvent, error) {
	return nil, errors.New("unreachable")
}

func TestGetMeetingHistoryHidesStoreFailures(t *testing.T) {
	previous := newHistoryAggregator
	newHistoryAggregator = func() *services.HistoryAggregator {
		return services.NewHistoryAggregator(brokenHistoryStore{})
	}
	t.Cleanup(func() { newHistoryAggregator = previous })

	app := fiber.New()
	app.Get("/api/meeting-history", func(c *fiber.Ctx) error {
		c.Locals("user", models.Account{Email: "t@x.com"})
		return getMeetingHistory(c)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/meeting-history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	// Opaque body, nothing about the underlying store leaks out.
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(body))
	assert.NotContains(t, string(body), "db-internal")
}
