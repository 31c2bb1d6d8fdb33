package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"post-notify/domain/post"
)

func testPayload() post.NotificationPayload {
	return post.NotificationPayload{
		ID:        463,
		Message:   "a post",
		PageID:    511,
		CreatedAt: time.Date(2017, 5, 1, 19, 0, 0, 0, time.UTC),
	}
}

func TestWebhookNotifier_Send(t *testing.T) {
	req := require.New(t)

	var gotPayload post.NotificationPayload
	var gotDeliveryID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("application/json", r.Header.Get("Content-Type"))
		gotDeliveryID = r.Header.Get(DeliveryIDHeader)
		req.NoError(json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(slog.Default(), time.Second)
	err := n.Send(context.Background(), server.URL, testPayload())

	req.NoError(err)
	req.Equal(testPayload(), gotPayload)
	req.NotEmpty(gotDeliveryID)
}

func TestWebhookNotifier_Send_NonSuccessStatus(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n := NewWebhookNotifier(slog.Default(), time.Second)
	err := n.Send(context.Background(), server.URL, testPayload())

	req.Error(err)
	req.Contains(err.Error(), "503")
}

func TestWebhookNotifier_Send_Timeout(t *testing.T) {
	req := require.New(t)

	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	n := NewWebhookNotifier(slog.Default(), time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := n.Send(ctx, server.URL, testPayload())
	req.Error(err)
}

func TestStaticPageDirectory(t *testing.T) {
	req := require.New(t)

	d := NewStaticPageDirectory(map[int64]string{511: "https://hooks.example.com/delta"})

	url, ok := d.EndpointFor(511)
	req.True(ok)
	req.Equal("https://hooks.example.com/delta", url)

	_, ok = d.EndpointFor(999)
	req.False(ok)

	// A nil map behaves like an empty directory.
	_, ok = NewStaticPageDirectory(nil).EndpointFor(511)
	req.False(ok)
}
