package httpapi

import (
	"log/slog"
	"net/http"

	"post-notify/services"
)

// NewMux wires the routes and the middleware chain (request id, logging).
func NewMux(log *slog.Logger, svc services.IPostService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /posts", CreatePostHandler(svc))
	mux.HandleFunc("POST /posts/{id}/seen", MarkSeenHandler(svc))
	mux.HandleFunc("GET /posts/{id}", ShowPostHandler(svc))
	mux.HandleFunc("GET /healthz", HealthzHandler())

	var handler http.Handler = mux
	handler = Logging(log)(handler)
	handler = WithRequestID()(handler)
	return handler
}
