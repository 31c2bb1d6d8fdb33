//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=../mocks/mock_notifier.go -package=mocks

// Package notifier holds the outbound side of the pipeline: the transport
// that pushes a notification payload to a page's webhook endpoint, and the
// directory resolving which endpoint a page subscribed with.
package notifier

import (
	"context"

	"post-notify/domain/post"
)

type INotifier interface {
	Send(ctx context.Context, destination string, payload post.NotificationPayload) error
}

// IPageDirectory resolves the webhook destination a page registered.
// The real page-configuration service lives elsewhere; this service only
// needs the lookup.
type IPageDirectory interface {
	EndpointFor(pageID int64) (string, bool)
}
