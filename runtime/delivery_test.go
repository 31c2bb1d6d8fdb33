package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"post-notify/domain/post"
	"post-notify/mocks"
	"post-notify/notifier"
	"post-notify/repositories"
)

const testEndpoint = "https://hooks.example.com/delta"

func setupRepo(t *testing.T) *repositories.PostRepository {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repositories.NewPostRepository(db, slog.Default())
}

func pendingPost(id int64) post.Post {
	return post.Post{
		ID:        id,
		Message:   "a post",
		CreatedAt: time.Date(2017, 5, 1, 19, 0, 0, 0, time.UTC),
		PageID:    511,
		Delivery:  post.Delivery{Status: post.DeliveryPending},
	}
}

func fastConfig() DeliveryConfig {
	return DeliveryConfig{
		Timeout:     time.Second,
		MaxAttempts: 3,
		Backoff:     Backoff{BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}
}

func testWorker(t *testing.T, repo *repositories.PostRepository, n notifier.INotifier) *DeliveryWorker {
	t.Helper()
	ctrl := gomock.NewController(t)
	pages := mocks.NewMockIPageDirectory(ctrl)
	pages.EXPECT().EndpointFor(int64(511)).Return(testEndpoint, true).AnyTimes()
	return NewDeliveryWorker(slog.Default(), nil, repo, pages, n, fastConfig())
}

func TestDeliveryWorker_SendsFirstTry(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)
	req.NoError(repo.Save(pendingPost(463)))

	n := mocks.NewMockINotifier(ctrl)
	n.EXPECT().Send(gomock.Any(), testEndpoint, gomock.Any()).Return(nil).Times(1)

	w := testWorker(t, repo, n)
	w.deliver(context.Background(), 463)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(post.DeliverySent, fetched.Delivery.Status)
	req.Equal(1, fetched.Delivery.Attempts)
	req.NotNil(fetched.NotificationSentAt)
	req.False(fetched.NotificationSentAt.Before(fetched.CreatedAt))
}

func TestDeliveryWorker_RetriesThenSucceeds(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)
	req.NoError(repo.Save(pendingPost(463)))

	n := mocks.NewMockINotifier(ctrl)
	transient := fmt.Errorf("connection refused")
	gomock.InOrder(
		n.EXPECT().Send(gomock.Any(), testEndpoint, gomock.Any()).Return(transient),
		n.EXPECT().Send(gomock.Any(), testEndpoint, gomock.Any()).Return(transient),
		n.EXPECT().Send(gomock.Any(), testEndpoint, gomock.Any()).Return(nil),
	)

	w := testWorker(t, repo, n)
	w.deliver(context.Background(), 463)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(post.DeliverySent, fetched.Delivery.Status)
	// Two failures plus the successful attempt.
	req.Equal(3, fetched.Delivery.Attempts)
	req.Empty(fetched.Delivery.LastError)
	req.NotNil(fetched.NotificationSentAt)
}

func TestDeliveryWorker_TerminalFailureAfterMaxAttempts(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)
	req.NoError(repo.Save(pendingPost(463)))

	n := mocks.NewMockINotifier(ctrl)
	n.EXPECT().
		Send(gomock.Any(), testEndpoint, gomock.Any()).
		Return(fmt.Errorf("endpoint unreachable")).
		Times(3)

	w := testWorker(t, repo, n)
	w.deliver(context.Background(), 463)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	// Given up is never conflated with sent.
	req.Equal(post.DeliveryFailed, fetched.Delivery.Status)
	req.Equal(3, fetched.Delivery.Attempts)
	req.Nil(fetched.NotificationSentAt)
	req.Contains(fetched.Delivery.LastError, "endpoint unreachable")
}

func TestDeliveryWorker_NoEndpointIsTerminal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)

	p := pendingPost(463)
	p.PageID = 999
	req.NoError(repo.Save(p))

	pages := mocks.NewMockIPageDirectory(ctrl)
	pages.EXPECT().EndpointFor(int64(999)).Return("", false)
	n := mocks.NewMockINotifier(ctrl)

	w := NewDeliveryWorker(slog.Default(), nil, repo, pages, n, fastConfig())
	w.deliver(context.Background(), 463)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(post.DeliveryFailed, fetched.Delivery.Status)
	req.Nil(fetched.NotificationSentAt)
}

func TestDeliveryWorker_SkipsSettledRecords(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)

	p := pendingPost(463)
	req.NoError(p.MarkDispatched(p.CreatedAt.Add(time.Minute)))
	req.NoError(repo.Save(p))

	// No Send expectation: a settled record must not be re-delivered.
	n := mocks.NewMockINotifier(ctrl)
	w := testWorker(t, repo, n)
	w.deliver(context.Background(), 463)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(1, fetched.Delivery.Attempts)
}

func TestDeliveryWorker_RunDrainsQueue(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := setupRepo(t)
	req.NoError(repo.Save(pendingPost(463)))

	n := mocks.NewMockINotifier(ctrl)
	delivered := make(chan struct{})
	n.EXPECT().
		Send(gomock.Any(), testEndpoint, gomock.Any()).
		DoAndReturn(func(context.Context, string, post.NotificationPayload) error {
			close(delivered)
			return nil
		})

	queue := make(chan int64, 1)
	pages := mocks.NewMockIPageDirectory(ctrl)
	pages.EXPECT().EndpointFor(int64(511)).Return(testEndpoint, true)
	w := NewDeliveryWorker(slog.Default(), queue, repo, pages, n, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	queue <- 463

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		req.Fail("delivery did not happen")
	}

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker did not stop on cancellation")
	}
}
