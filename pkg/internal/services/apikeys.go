package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/google/uuid"
)

const apiKeyPrefix = "snk_"

// NewApiKey mints a key for the given account. The clear secret is only
// returned here, afterwards just its digest remains.
func NewApiKey(user models.Account, label string, expiredAt *time.Time) (models.ApiKey, string, error) {
	secret := apiKeyPrefix + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	key := models.ApiKey{
		AccountEmail: user.Email,
		Label:        label,
		Prefix:       secret[:len(apiKeyPrefix)+8],
		Digest:       digestToken(secret),
		ExpiredAt:    expiredAt,
	}

	if err := database.C.Save(&key).Error; err != nil {
		return key, "", err
	}
	return key, secret, nil
}

func AuthenticateApiKey(secret string) (models.Account, error) {
	var account models.Account

	var key models.ApiKey
	if err := database.C.Where(models.ApiKey{
		Digest: digestToken(secret),
	}).First(&key).Error; err != nil {
		return account, fmt.Errorf("invalid api key")
	}
	if key.ExpiredAt != nil && key.ExpiredAt.Before(time.Now()) {
		return account, fmt.Errorf("api key has expired")
	}

	database.C.Model(&key).Update("last_used_at", time.Now())

	account.Email = key.AccountEmail
	account.Name = NameFromEmail(key.AccountEmail)
	return account, nil
}

func ListApiKeys(user models.Account) ([]models.ApiKey, error) {
	var keys []models.ApiKey
	if err := database.C.Where(models.ApiKey{
		AccountEmail: user.Email,
	}).Order("created_at DESC").Find(&keys).Error; err != nil {
		return keys, err
	}
	return keys, nil
}

func DeleteApiKey(user models.Account, id uint) error {
	var key models.ApiKey
	if err := database.C.Where(models.ApiKey{
		BaseModel:    models.BaseModel{ID: id},
		AccountEmail: user.Email,
	}).First(&key).Error; err != nil {
		return err
	}
	if err := database.C.Delete(&key).Error; err != nil {
		return err
	}

	// The identity cache keys entries by the same digest, so the key
	// stops authenticating immediately instead of after the cache TTL.
	ForgetAuthCache(context.Background(), key.Digest)
	return nil
}
