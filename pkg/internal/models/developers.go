package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApiKey authenticates programmatic callers. The clear secret is shown
// exactly once at creation time; only its digest is stored.
type ApiKey struct {
	BaseModel

	AccountEmail string     `json:"account_email" gorm:"index"`
	Label        string     `json:"label"`
	Prefix       string     `json:"prefix"`
	Digest       string     `json:"-" gorm:"uniqueIndex"`
	LastUsedAt   *time.Time `json:"last_used_at"`
	ExpiredAt    *time.Time `json:"expired_at"`
}

type Webhook struct {
	BaseModel

	AccountEmail string                      `json:"account_email" gorm:"index"`
	Url          string                      `json:"url"`
	Secret       string                      `json:"-"`
	Events       datatypes.JSONSlice[string] `json:"events"`
	IsActive     bool                        `json:"is_active"`

	Deliveries []WebhookDelivery `json:"deliveries,omitempty"`
}

const (
	WebhookEventFileShared  = "file.shared"
	WebhookEventFileDeleted = "file.deleted"
	WebhookEventTest        = "webhook.test"
)

type WebhookDelivery struct {
	BaseModel

	Uuid       string            `json:"uuid" gorm:"uniqueIndex"`
	Event      string            `json:"event"`
	Payload    datatypes.JSONMap `json:"payload"`
	StatusCode int               `json:"status_code"`
	Attempts   int               `json:"attempts"`
	IsDone     bool              `json:"is_done"`
	LastError  string            `json:"last_error"`

	Webhook   Webhook `json:"webhook"`
	WebhookID uint    `json:"webhook_id"`
}
