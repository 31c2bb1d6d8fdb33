//go:generate go run go.uber.org/mock/mockgen -source=post_service.go -destination=../mocks/mock_post_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"post-notify/domain/post"
	"post-notify/errors"
	"post-notify/repositories"
)

type IPostService interface {
	Create(ctx context.Context, raw map[string]string) (post.Post, error)
	MarkSeen(ctx context.Context, id int64, ts time.Time) (post.Post, error)
	Get(ctx context.Context, id int64) (post.Post, error)
}

// Enqueuer is the hand-off into the asynchronous dispatch path.
// Satisfied by runtime.Dispatcher.
type Enqueuer interface {
	Enqueue(id int64)
}

// PostService is the only orchestrating piece of core logic: it validates
// and persists incoming post events, hands them to the dispatch queue, and
// records acknowledgment postbacks.
type PostService struct {
	log   *slog.Logger
	repo  repositories.IPostRepository
	queue Enqueuer
	now   func() time.Time
}

func NewPostService(log *slog.Logger, repo repositories.IPostRepository, queue Enqueuer) *PostService {
	return &PostService{
		log:   log,
		repo:  repo,
		queue: queue,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the six raw fields (collecting every violation),
// persists the record and enqueues its notification. It returns before any
// delivery happens: the caller's latency never includes the webhook's.
// An enqueue problem is recorded but cannot fail a create that already
// persisted.
func (s *PostService) Create(_ context.Context, raw map[string]string) (post.Post, error) {
	p, err := post.ParseRaw(raw, s.now())
	if err != nil {
		return post.Post{}, err
	}

	if err := s.repo.Save(p); err != nil {
		return post.Post{}, fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}

	s.queue.Enqueue(p.ID)
	s.log.Info("post created", "id", p.ID, "page", p.PageID)
	return p, nil
}

// MarkSeen records the acknowledgment postback for a dispatched record.
// The repository serializes the read-modify-write per id, so concurrent
// postbacks and dispatch completions cannot interleave.
func (s *PostService) MarkSeen(_ context.Context, id int64, ts time.Time) (post.Post, error) {
	p, err := s.repo.Update(id, func(p *post.Post) error {
		return p.MarkSeen(ts)
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) ||
			stderrors.Is(err, errors.ErrNotDispatched) ||
			stderrors.Is(err, errors.ErrSeenRegression) {
			return post.Post{}, err
		}
		return post.Post{}, fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	s.log.Info("post acknowledged", "id", id, "seenAt", ts)
	return p, nil
}

func (s *PostService) Get(_ context.Context, id int64) (post.Post, error) {
	p, found, err := s.repo.FindByID(id)
	if err != nil {
		return post.Post{}, fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	if !found {
		return post.Post{}, errors.ErrNotFound
	}
	return p, nil
}
