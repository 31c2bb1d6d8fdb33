package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"post-notify/domain/post"
)

const DeliveryIDHeader = "X-Delivery-Id"

// WebhookNotifier POSTs the notification payload as JSON to the page's
// endpoint. Each call carries a fresh delivery id header so receivers can
// deduplicate retries.
type WebhookNotifier struct {
	client *http.Client
	log    *slog.Logger
}

func NewWebhookNotifier(log *slog.Logger, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, destination string, payload post.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DeliveryIDHeader, uuid.NewString())

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}

	n.log.Debug("notification delivered", "post", payload.ID, "page", payload.PageID, "destination", destination)
	return nil
}
