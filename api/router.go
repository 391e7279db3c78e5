// Package api exposes the activity service over HTTP for the editor and the
// dashboard.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/storyverse/server/activity"
	"github.com/storyverse/server/auth"
	"github.com/storyverse/server/logging"
)

type Options struct {
	AllowedOrigins []string
	// AuthDisabled trusts the {userID} path segment without a token. Local
	// development only.
	AuthDisabled bool
}

type Handler struct {
	activity     *activity.Service
	log          logging.Logger
	authDisabled bool
}

// NewRouter wires the routes. verifier may be nil only when auth is disabled.
func NewRouter(svc *activity.Service, verifier auth.TokenVerifier, log logging.Logger, opts Options) http.Handler {
	h := &Handler{activity: svc, log: log, authDisabled: opts.AuthDisabled}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	// Auth travels in the Authorization header, never cookies, so
	// credentialed CORS stays off.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if verifier != nil {
		r.Use(auth.Middleware(verifier, log))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/activity", h.RecordActivity)
		r.Get("/activity", h.ActivityDates)
		r.Get("/streak", h.Streak)
	})

	return r
}

func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
