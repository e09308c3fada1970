/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file defines the main Router, applying logging, CORS and panic recovery to every route and
per-IP rate limiting to the write endpoints before delegating to the handlers.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"batepapo/internal/pkg/limiter"
	"batepapo/internal/pkg/logx"
	"batepapo/internal/pkg/resp"
)

// UserHeader names the request header carrying the caller's display name.
const UserHeader = "User"

// Router sets up the routing table. The rate limiters' cleanup goroutines stop when ctx is done.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	joinLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(deps.Config.JoinRate), deps.Config.JoinBurst)
	postLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(deps.Config.PostRate), deps.Config.PostBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", UserHeader},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "batepapo",
		})
	})

	r.Get("/participants", HandleListParticipants(deps))
	r.With(joinLimiter.Middleware).Post("/participants", HandleJoin(deps))

	r.Get("/messages", HandleListMessages(deps))
	r.With(postLimiter.Middleware).Post("/messages", HandlePostMessage(deps))

	r.Post("/status", HandleStatus(deps))

	return r
}

// respondInternal logs err and answers with a bodyless 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logx.Error(err, msg, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
	resp.RespondStatus(w, r, http.StatusInternalServerError)
}
