// Package post contains the core concepts of the notification pipeline.
// This file defines the Post record and its lifecycle rules.
// A record moves Created -> Dispatched -> Acknowledged, with a terminal
// failed branch; no field is ever un-set once set.
package post

import (
	"fmt"
	"time"

	"post-notify/errors"
)

type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// State is the coarse lifecycle position, derived from the timestamps.
type State string

const (
	StateCreated      State = "created"
	StateDispatched   State = "dispatched"
	StateAcknowledged State = "acknowledged"
	StateFailed       State = "failed"
)

// Delivery tracks the outcome of the asynchronous dispatch path.
// Failed is a distinct terminal state, never folded into Sent.
type Delivery struct {
	Status    DeliveryStatus `json:"status"`
	Attempts  int            `json:"attempts"`
	LastError string         `json:"lastError,omitempty"`
}

// Post represents one post-to-page event and its notification lifecycle.
type Post struct {
	ID                 int64      `json:"id"`
	Message            string     `json:"message"`
	CreatedAt          time.Time  `json:"createdAt"`
	PageID             int64      `json:"pageId"`
	SeenAt             *time.Time `json:"seenAt,omitempty"`
	NotificationSentAt *time.Time `json:"notificationSentAt,omitempty"`
	Delivery           Delivery   `json:"delivery"`
}

// NotificationPayload is what gets pushed to the page's webhook endpoint.
type NotificationPayload struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	PageID    int64     `json:"pageId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Post) Payload() NotificationPayload {
	return NotificationPayload{
		ID:        p.ID,
		Message:   p.Message,
		PageID:    p.PageID,
		CreatedAt: p.CreatedAt,
	}
}

func (p Post) State() State {
	switch {
	case p.SeenAt != nil:
		return StateAcknowledged
	case p.NotificationSentAt != nil:
		return StateDispatched
	case p.Delivery.Status == DeliveryFailed:
		return StateFailed
	default:
		return StateCreated
	}
}

// RecordAttempt registers one failed delivery attempt. The record stays
// pending until MarkDispatched or MarkDeliveryFailed settles the outcome.
func (p *Post) RecordAttempt(cause error) {
	p.Delivery.Attempts++
	if cause != nil {
		p.Delivery.LastError = cause.Error()
	}
}

// MarkDispatched settles a successful delivery. The sent timestamp never
// precedes CreatedAt, so a fast worker on a future-dated post clamps to it.
func (p *Post) MarkDispatched(at time.Time) error {
	if p.Delivery.Status != DeliveryPending {
		return errors.ErrAlreadyDispatched
	}
	if at.Before(p.CreatedAt) {
		at = p.CreatedAt
	}
	p.Delivery.Status = DeliverySent
	p.Delivery.Attempts++
	p.Delivery.LastError = ""
	p.NotificationSentAt = &at
	return nil
}

// MarkDeliveryFailed settles a terminal failure after retries are exhausted.
func (p *Post) MarkDeliveryFailed(reason string) error {
	if p.Delivery.Status != DeliveryPending {
		return errors.ErrAlreadyDispatched
	}
	p.Delivery.Status = DeliveryFailed
	p.Delivery.LastError = reason
	return nil
}

// MarkSeen records the acknowledgment postback. It requires a completed
// dispatch and only moves forward: a timestamp earlier than the stored
// seenAt is a state violation, re-sending the same timestamp is accepted.
// The postback clock belongs to the page, so it is not compared against
// our own dispatch timestamp.
func (p *Post) MarkSeen(at time.Time) error {
	if p.NotificationSentAt == nil {
		return errors.ErrNotDispatched
	}
	if p.SeenAt != nil && at.Before(*p.SeenAt) {
		return errors.ErrSeenRegression
	}
	p.SeenAt = &at
	return nil
}

// Display renders the human-readable one-liner used by the show endpoint
// and the postctl table detail column.
func (p Post) Display() string {
	s := fmt.Sprintf("Post %d posted to page id %d created at %s",
		p.ID, p.PageID, p.CreatedAt.Format(TimeLayout))
	if p.NotificationSentAt != nil {
		s += fmt.Sprintf(", notification sent at %s", p.NotificationSentAt.Format(TimeLayout))
	}
	if p.SeenAt != nil {
		s += fmt.Sprintf(", seen at %s", p.SeenAt.Format(TimeLayout))
	}
	return s + ". Message: " + p.Message
}
