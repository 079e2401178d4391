package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/cache"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	webhookQueueKey    = "webhooks:deliveries"
	webhookMaxAttempts = 3
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func NewWebhook(user models.Account, webhook models.Webhook) (models.Webhook, error) {
	webhook.AccountEmail = user.Email
	webhook.IsActive = true
	if len(webhook.Secret) == 0 {
		webhook.Secret = uuid.NewString()
	}

	err := database.C.Save(&webhook).Error
	return webhook, err
}

func ListWebhooks(user models.Account) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	if err := database.C.Where(models.Webhook{
		AccountEmail: user.Email,
	}).Order("created_at DESC").Find(&webhooks).Error; err != nil {
		return webhooks, err
	}
	return webhooks, nil
}

func GetWebhook(user models.Account, id uint) (models.Webhook, error) {
	var webhook models.Webhook
	if err := database.C.Where(models.Webhook{
		BaseModel:    models.BaseModel{ID: id},
		AccountEmail: user.Email,
	}).First(&webhook).Error; err != nil {
		return webhook, err
	}
	return webhook, nil
}

func EditWebhook(webhook models.Webhook) (models.Webhook, error) {
	err := database.C.Save(&webhook).Error
	return webhook, err
}

func DeleteWebhook(webhook models.Webhook) error {
	return database.C.Select("Deliveries").Delete(&webhook).Error
}

// DispatchWebhookEvent fans an event out to every active webhook of the
// account that subscribed to it (an empty filter subscribes to all).
// Deliveries are queued in the cache and drained by the worker.
func DispatchWebhookEvent(email, event string, payload map[string]any) {
	var webhooks []models.Webhook
	if err := database.C.Where(models.Webhook{
		AccountEmail: email,
		IsActive:     true,
	}).Find(&webhooks).Error; err != nil {
		log.Error().Err(err).Str("event", event).Msg("An error occurred when looking up webhooks for dispatch...")
		return
	}

	for _, webhook := range webhooks {
		if len(webhook.Events) > 0 && !lo.Contains([]string(webhook.Events), event) {
			continue
		}
		if _, err := QueueWebhookDelivery(webhook, event, payload); err != nil {
			log.Error().Err(err).Uint("webhook", webhook.ID).Msg("An error occurred when queuing webhook delivery...")
		}
	}
}

func QueueWebhookDelivery(webhook models.Webhook, event string, payload map[string]any) (models.WebhookDelivery, error) {
	delivery := models.WebhookDelivery{
		Uuid:      uuid.NewString(),
		Event:     event,
		Payload:   payload,
		WebhookID: webhook.ID,
	}
	if err := database.C.Save(&delivery).Error; err != nil {
		return delivery, err
	}

	if err := cache.C.LPush(context.Background(), webhookQueueKey, delivery.ID).Err(); err != nil {
		return delivery, err
	}
	return delivery, nil
}

// RunWebhookDeliverWorker drains the delivery queue until ctx is done.
// Run it in its own goroutine.
func RunWebhookDeliverWorker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		res, err := cache.C.BRPop(ctx, 5*time.Second, webhookQueueKey).Result()
		if err != nil || len(res) < 2 {
			continue
		}
		id, err := strconv.ParseUint(res[1], 10, 64)
		if err != nil {
			continue
		}

		if err := deliverWebhook(uint(id)); err != nil {
			log.Warn().Err(err).Uint64("delivery", id).Msg("An error occurred when delivering webhook...")
		}
	}
}

func deliverWebhook(deliveryID uint) error {
	var delivery models.WebhookDelivery
	if err := database.C.Where(models.WebhookDelivery{
		BaseModel: models.BaseModel{ID: deliveryID},
	}).Preload("Webhook").First(&delivery).Error; err != nil {
		return err
	}

	if !performWebhookDelivery(&delivery) {
		return nil
	}
	return database.C.Save(&delivery).Error
}

// performWebhookDelivery posts the payload and records the outcome on
// the delivery in place. It reports whether an attempt was made;
// finished or exhausted deliveries are left untouched.
func performWebhookDelivery(delivery *models.WebhookDelivery) bool {
	if delivery.IsDone || delivery.Attempts >= webhookMaxAttempts {
		return false
	}
	delivery.Attempts++

	body, err := jsoniter.Marshal(map[string]any{
		"uuid":       delivery.Uuid,
		"event":      delivery.Event,
		"payload":    map[string]any(delivery.Payload),
		"created_at": delivery.CreatedAt,
	})
	if err != nil {
		delivery.LastError = err.Error()
		return true
	}

	request, err := http.NewRequest(http.MethodPost, delivery.Webhook.Url, bytes.NewReader(body))
	if err != nil {
		delivery.LastError = err.Error()
		return true
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Sonacove-Event", delivery.Event)
	request.Header.Set("X-Sonacove-Signature", SignWebhookPayload(delivery.Webhook.Secret, body))

	response, err := webhookClient.Do(request)
	if err != nil {
		delivery.LastError = err.Error()
		return true
	}
	defer response.Body.Close()

	delivery.StatusCode = response.StatusCode
	delivery.IsDone = response.StatusCode >= 200 && response.StatusCode < 300
	if !delivery.IsDone {
		delivery.LastError = fmt.Sprintf("endpoint answered status %d", response.StatusCode)
	} else {
		delivery.LastError = ""
	}
	return true
}

func SignWebhookPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SweepPendingWebhookDeliveries re-queues deliveries that failed but
// still have attempts left. Wired to the cron scheduler.
func SweepPendingWebhookDeliveries() {
	var deliveries []models.WebhookDelivery
	if err := database.C.
		Where("is_done = ? AND attempts > 0 AND attempts < ?", false, webhookMaxAttempts).
		Where("updated_at <= ?", time.Now().Add(-5*time.Minute)).
		Find(&deliveries).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when sweeping pending webhook deliveries...")
		return
	}

	for _, delivery := range deliveries {
		if err := cache.C.LPush(context.Background(), webhookQueueKey, delivery.ID).Err(); err != nil {
			log.Error().Err(err).Uint("delivery", delivery.ID).Msg("An error occurred when re-queuing webhook delivery...")
		}
	}

	if len(deliveries) > 0 {
		log.Debug().Int("count", len(deliveries)).Msg("Re-queued pending webhook deliveries.")
	}
}
