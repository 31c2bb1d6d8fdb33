package repositories

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"post-notify/domain/post"
	"post-notify/errors"
)

func setupDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func storedPost(id int64) post.Post {
	return post.Post{
		ID:        id,
		Message:   "a post",
		CreatedAt: time.Date(2017, 5, 1, 19, 0, 0, 0, time.UTC),
		PageID:    511,
		Delivery:  post.Delivery{Status: post.DeliveryPending},
	}
}

func TestPostRepository_SaveAndFind(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	req.NoError(repo.Save(storedPost(463)))

	fetched, found, err := repo.FindByID(463)
	req.NoError(err)
	req.True(found)
	req.Equal(int64(463), fetched.ID)
	req.Equal(int64(511), fetched.PageID)
	req.Equal(post.DeliveryPending, fetched.Delivery.Status)
	req.Nil(fetched.SeenAt)

	_, found, err = repo.FindByID(999)
	req.NoError(err)
	req.False(found)
}

func TestPostRepository_Update(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	req.NoError(repo.Save(storedPost(463)))

	sentAt := time.Date(2017, 5, 1, 19, 20, 0, 0, time.UTC)
	updated, err := repo.Update(463, func(p *post.Post) error {
		return p.MarkDispatched(sentAt)
	})
	req.NoError(err)
	req.Equal(sentAt, *updated.NotificationSentAt)

	// The write is durable.
	fetched, found, err := repo.FindByID(463)
	req.NoError(err)
	req.True(found)
	req.Equal(post.DeliverySent, fetched.Delivery.Status)
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	_, err := repo.Update(999, func(p *post.Post) error { return nil })
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestPostRepository_Update_MutateErrorAbortsWrite(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	req.NoError(repo.Save(storedPost(463)))

	_, err := repo.Update(463, func(p *post.Post) error {
		p.Delivery.Attempts = 99
		return fmt.Errorf("rejected")
	})
	req.Error(err)

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(0, fetched.Delivery.Attempts)
}

func TestPostRepository_ListAll_InIDOrder(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	for _, id := range []int64{300, 5, 1000} {
		req.NoError(repo.Save(storedPost(id)))
	}

	posts, err := repo.ListAll()
	req.NoError(err)
	req.Len(posts, 3)
	req.Equal(int64(5), posts[0].ID)
	req.Equal(int64(300), posts[1].ID)
	req.Equal(int64(1000), posts[2].ID)
}

func TestPostRepository_Update_SerializedPerRecord(t *testing.T) {
	req := require.New(t)
	repo := NewPostRepository(setupDB(t), slog.Default())

	req.NoError(repo.Save(storedPost(463)))

	// Concurrent read-modify-write cycles on the same record must not lose
	// increments.
	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(463, func(p *post.Post) error {
				p.RecordAttempt(fmt.Errorf("transient"))
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	fetched, _, err := repo.FindByID(463)
	req.NoError(err)
	req.Equal(writers, fetched.Delivery.Attempts)
}
