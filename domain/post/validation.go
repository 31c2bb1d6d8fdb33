package post

import (
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"post-notify/errors"
)

const (
	// TimeLayout is the minute-resolution format the original feed emits.
	TimeLayout = "2006-01-02 15:04"
	// timeLayoutSeconds is also accepted on input.
	timeLayoutSeconds = "2006-01-02 15:04:05"
)

var validate = validator.New()

// rawFields lists the six recognized payload fields in canonical order.
// Every one of them is mandatory in the raw payload, even when the semantic
// value is empty (seenAt / notificationSentAt at creation time).
var rawFields = []string{"id", "message", "createdAt", "seenAt", "pageId", "notificationSentAt"}

// ValidateRaw checks a raw create payload and returns every invalid field
// name: missing recognized keys, unrecognized keys, and per-field rule
// violations. It never stops at the first problem, so the caller can report
// all of them at once. An empty result means the payload is valid.
func ValidateRaw(raw map[string]string) []string {
	var failed []string

	for _, field := range rawFields {
		value, ok := raw[field]
		if !ok {
			failed = append(failed, field)
			continue
		}
		if !fieldValid(field, value) {
			failed = append(failed, field)
		}
	}

	// Unrecognized keys are a data-integrity defect, not something to drop
	// silently. Reported after the canonical fields, in lexical order.
	var unknown []string
	for key := range raw {
		if !recognized(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return append(failed, unknown...)
}

func recognized(key string) bool {
	for _, field := range rawFields {
		if key == field {
			return true
		}
	}
	return false
}

func fieldValid(field, value string) bool {
	switch field {
	case "id", "pageId":
		return validate.Var(value, "required,number") == nil
	case "message":
		return validate.Var(value, "required") == nil
	case "createdAt", "seenAt", "notificationSentAt":
		if value == "" {
			return true
		}
		_, err := ParseTimestamp(value)
		return err == nil
	default:
		return false
	}
}

// ParseTimestamp accepts the feed's minute format and a seconds variant.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(timeLayoutSeconds, value)
}

// ParseRaw builds a Created-state Post from an already validated payload.
// An empty createdAt defaults to now. The seenAt / notificationSentAt raw
// values are intentionally ignored: those fields are only ever set by the
// dispatch and postback paths.
func ParseRaw(raw map[string]string, now time.Time) (Post, error) {
	if failed := ValidateRaw(raw); len(failed) > 0 {
		return Post{}, &errors.ValidationError{Fields: failed}
	}

	id, err := strconv.ParseInt(raw["id"], 10, 64)
	if err != nil {
		return Post{}, &errors.ValidationError{Fields: []string{"id"}}
	}
	pageID, err := strconv.ParseInt(raw["pageId"], 10, 64)
	if err != nil {
		return Post{}, &errors.ValidationError{Fields: []string{"pageId"}}
	}

	createdAt := now.UTC().Truncate(time.Minute)
	if raw["createdAt"] != "" {
		createdAt, _ = ParseTimestamp(raw["createdAt"])
	}

	return Post{
		ID:        id,
		Message:   raw["message"],
		CreatedAt: createdAt,
		PageID:    pageID,
		Delivery:  Delivery{Status: DeliveryPending},
	}, nil
}
