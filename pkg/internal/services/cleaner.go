package services

import (
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-60 * time.Minute)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	// Deal soft-deletion
	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().Delete(model, "deleted_at IS NOT NULL AND deleted_at <= ?", deadline)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
		}
		count += tx.RowsAffected
	}

	// Expired invites are useless, drop them outright
	tx := database.C.Unscoped().
		Delete(&models.OrganizationInvite{}, "expired_at <= ?", time.Now())
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when pruning expired invites...")
	}
	count += tx.RowsAffected

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
