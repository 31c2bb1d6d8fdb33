// Package runtime is the asynchronous side of the pipeline: the dispatch
// queue decoupling event creation from notification delivery, and the
// workers draining it. It orchestrates without containing domain rules.
package runtime

import (
	"log/slog"

	"post-notify/domain/post"
	"post-notify/errors"
	"post-notify/repositories"
)

// Dispatcher is the hand-off point between the synchronous create path and
// the delivery workers: a buffered channel of record ids.
type Dispatcher struct {
	ch   chan int64
	repo repositories.IPostRepository
	log  *slog.Logger
}

func NewDispatcher(log *slog.Logger, repo repositories.IPostRepository, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Dispatcher{
		ch:   make(chan int64, bufferSize),
		repo: repo,
		log:  log,
	}
}

// Enqueue hands a record id to the delivery workers. It never blocks and
// never fails the caller: when the buffer is saturated the id is dropped,
// the saturation is logged and recorded on the post, and the record stays
// pending where a scan can pick it up.
func (d *Dispatcher) Enqueue(id int64) {
	select {
	case d.ch <- id:
	default:
		d.log.Warn("dispatch queue full, delivery deferred", "id", id)
		if _, err := d.repo.Update(id, func(p *post.Post) error {
			if p.Delivery.Status == post.DeliveryPending {
				p.Delivery.LastError = errors.ErrQueueFull.Error()
			}
			return nil
		}); err != nil {
			d.log.Error("failed to record queue saturation", "id", id, "error", err)
		}
	}
}

// Queue exposes the read side to delivery workers.
func (d *Dispatcher) Queue() <-chan int64 {
	return d.ch
}

// Len reports the number of ids waiting in the buffer.
func (d *Dispatcher) Len() int {
	return len(d.ch)
}
