package database

import (
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Meeting{},
	&models.MeetingEvent{},
	&models.Organization{},
	&models.OrganizationMember{},
	&models.OrganizationInvite{},
	&models.ApiKey{},
	&models.Webhook{},
	&models.WebhookDelivery{},
	&models.SharedFile{},
	&models.BillingAccount{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
