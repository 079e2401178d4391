package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		api.Get("/users/me", authMiddleware, getUserinfo)

		api.Get("/meeting-history", authMiddleware, getMeetingHistory)

		meetings := api.Group("/meetings").Use(authMiddleware).Name("Meetings API")
		{
			meetings.Get("/", listMeeting)
			meetings.Get("/:meetingId", getMeeting)
			meetings.Get("/:meetingId/participants", listMeetingParticipants)
			meetings.Post("/:meetingId/token", exchangeMeetingToken)
		}

		api.Post("/invites/:token/accept", authMiddleware, acceptOrganizationInvite)

		organizations := api.Group("/organizations").Use(authMiddleware).Name("Organizations API")
		{
			organizations.Get("/", listOrganization)
			organizations.Post("/", createOrganization)
			organizations.Get("/:organizationId", getOrganization)
			organizations.Put("/:organizationId", editOrganization)
			organizations.Delete("/:organizationId", deleteOrganization)

			organizations.Get("/:organizationId/members", listOrganizationMembers)
			organizations.Post("/:organizationId/members", addOrganizationMember)
			organizations.Delete("/:organizationId/members/:memberId", removeOrganizationMember)
			organizations.Post("/:organizationId/invites", createOrganizationInvite)
		}

		developer := api.Group("/developer").Use(authMiddleware).Name("Developer API")
		{
			developer.Get("/keys", listApiKey)
			developer.Post("/keys", createApiKey)
			developer.Delete("/keys/:keyId", deleteApiKey)

			developer.Get("/webhooks", listWebhook)
			developer.Post("/webhooks", createWebhook)
			developer.Put("/webhooks/:webhookId", editWebhook)
			developer.Delete("/webhooks/:webhookId", deleteWebhook)
			developer.Post("/webhooks/:webhookId/test", testWebhook)
		}

		billing := api.Group("/billing").Use(authMiddleware).Name("Billing API")
		{
			billing.Get("/", getSubscription)
			billing.Post("/checkout", createCheckoutSession)
			billing.Post("/portal", createPortalSession)
		}

		files := api.Group("/files").Use(authMiddleware).Name("Files API")
		{
			files.Get("/", listSharedFile)
			files.Post("/", createSharedFile)
			files.Post("/:fileId/complete", completeSharedFileUpload)
			files.Get("/:fileId/download", getSharedFileDownloadURL)
			files.Delete("/:fileId", deleteSharedFile)
		}
	}
}
