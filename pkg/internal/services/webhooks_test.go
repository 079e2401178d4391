package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testDelivery(url string) models.WebhookDelivery {
	return models.WebhookDelivery{
		Uuid:  "d6f1c6de-0000-0000-0000-000000000001",
		Event: models.WebhookEventFileShared,
		Payload: datatypes.JSONMap{
			"file_id": float64(42),
		},
		Webhook: models.Webhook{
			Url:    url,
			Secret: "secret-a",
		},
	}
}

func TestPerformWebhookDeliverySuccess(t *testing.T) {
	var receivedEvent, receivedSignature string
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedEvent = r.Header.Get("X-Sonacove-Event")
		receivedSignature = r.Header.Get("X-Sonacove-Signature")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	delivery := testDelivery(server.URL)
	require.True(t, performWebhookDelivery(&delivery))

	assert.True(t, delivery.IsDone)
	assert.Equal(t, 1, delivery.Attempts)
	assert.Equal(t, http.StatusNoContent, delivery.StatusCode)
	assert.Empty(t, delivery.LastError)

	assert.Equal(t, models.WebhookEventFileShared, receivedEvent)
	// The endpoint can verify the body against the shared secret.
	assert.Equal(t, SignWebhookPayload("secret-a", receivedBody), receivedSignature)

	var envelope map[string]any
	require.NoError(t, jsoniter.Unmarshal(receivedBody, &envelope))
	assert.Equal(t, delivery.Uuid, envelope["uuid"])
}

func TestPerformWebhookDeliveryRecordsEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	delivery := testDelivery(server.URL)
	require.True(t, performWebhookDelivery(&delivery))

	assert.False(t, delivery.IsDone)
	assert.Equal(t, 1, delivery.Attempts)
	assert.Equal(t, http.StatusInternalServerError, delivery.StatusCode)
	assert.Contains(t, delivery.LastError, "endpoint answered status 500")
}

func TestPerformWebhookDeliveryRecordsConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	delivery := testDelivery(server.URL)
	require.True(t, performWebhookDelivery(&delivery))

	assert.False(t, delivery.IsDone)
	assert.Equal(t, 1, delivery.Attempts)
	assert.NotEmpty(t, delivery.LastError)
}

func TestPerformWebhookDeliverySkipsFinishedAndExhausted(t *testing.T) {
	done := testDelivery("http://127.0.0.1:1/hook")
	done.IsDone = true
	assert.False(t, performWebhookDelivery(&done))
	assert.Equal(t, 0, done.Attempts)

	exhausted := testDelivery("http://127.0.0.1:1/hook")
	exhausted.Attempts = webhookMaxAttempts
	assert.False(t, performWebhookDelivery(&exhausted))
	assert.Equal(t, webhookMaxAttempts, exhausted.Attempts)
}

func TestSignWebhookPayload(t *testing.T) {
	body := []byte(`{"event":"file.shared"}`)

	first := SignWebhookPayload("secret-a", body)
	second := SignWebhookPayload("secret-a", body)
	assert.Equal(t, first, second)
	// sha256 hex
	assert.Len(t, first, 64)

	assert.NotEqual(t, first, SignWebhookPayload("secret-b", body))
	assert.NotEqual(t, first, SignWebhookPayload("secret-a", []byte(`{"event":"file.deleted"}`)))
}
