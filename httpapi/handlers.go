// Package httpapi exposes the caller-facing surface of the pipeline:
// POST /posts (create), POST /posts/{id}/seen (acknowledgment postback) and
// GET /posts/{id} (display form). Delivery errors never surface here; they
// are visible only through the record's delivery state.
package httpapi

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"post-notify/domain/post"
	"post-notify/errors"
	"post-notify/services"
)

// postView is the display form: set fields only, plus the derived state and
// the human-readable line.
type postView struct {
	post.Post
	State   post.State `json:"state"`
	Display string     `json:"display"`
}

func newPostView(p post.Post) postView {
	return postView{Post: p, State: p.State(), Display: p.Display()}
}

func CreatePostHandler(svc services.IPostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r, maxBodyBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		raw, err := decodeRawFields(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "body must be a JSON object")
			return
		}

		p, err := svc.Create(r.Context(), raw)
		if err != nil {
			var verr *errors.ValidationError
			if stderrors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error":  "validation failed",
					"fields": verr.Fields,
				})
				return
			}
			writeError(w, http.StatusInternalServerError, "problem persisting your post, please try again")
			return
		}

		writeJSON(w, http.StatusCreated, newPostView(p))
	}
}

func MarkSeenHandler(svc services.IPostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		body, err := readBody(r, maxBodyBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req struct {
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal(body, &req); err != nil || req.Timestamp == "" {
			writeError(w, http.StatusBadRequest, "body must carry a timestamp")
			return
		}
		ts, err := post.ParseTimestamp(req.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed timestamp")
			return
		}

		p, err := svc.MarkSeen(r.Context(), id, ts)
		if err != nil {
			switch {
			case stderrors.Is(err, errors.ErrNotFound):
				writeError(w, http.StatusNotFound, "post not found")
			case stderrors.Is(err, errors.ErrNotDispatched), stderrors.Is(err, errors.ErrSeenRegression):
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, newPostView(p))
	}
}

func ShowPostHandler(svc services.IPostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, newPostView(p))
	}
}

func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// decodeRawFields flattens a JSON object of strings or numbers into the raw
// string map the validator consumes. Numbers keep their literal form
// (UseNumber) so an id of 463 arrives as "463"; null counts as empty.
func decodeRawFields(body []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			raw[key] = v
		case json.Number:
			raw[key] = v.String()
		case nil:
			raw[key] = ""
		case bool:
			raw[key] = strconv.FormatBool(v)
		default:
			// Arrays and nested objects are never valid field values; keep
			// a non-empty marker so validation flags the field.
			raw[key] = "\x00invalid"
		}
	}
	return raw, nil
}
