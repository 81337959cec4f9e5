package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/internal/transport/middleware"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (ctxutil.Editor, error)
}

// RouterDeps holds everything the HTTP router mounts.
type RouterDeps struct {
	Health      *HealthHandler
	Booklets    *BookletHandler
	Graduations *GraduationHandler
	Roster      *RosterHandler
	Collab      *CollabHandler
	Presence    *PresenceSocket
	Uploads     *UploadHandler
	Metrics     http.Handler

	Tokens    tokenValidator
	// Limiter is optional; without it no route is rate limited.
	Limiter   *middleware.RateLimiter
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// NewRouter builds the HTTP API. Editor routes require a bearer token; the
// booklet download, site password check and student access routes are public.
func NewRouter(d RouterDeps) http.Handler {
	limit := func(scope string, perMinute int) middleware.Middleware {
		if d.Limiter == nil {
			return nil
		}
		return d.Limiter.Limit(scope, perMinute)
	}

	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Tokens),
		middleware.Logger(d.Logger),
	)

	r.Get("/health", d.Health.Health)
	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Chain(limit("api", d.RateLimit.RequestsPerMinute)))

		// Public.
		r.Get("/graduations/{id}/booklet", d.Booklets.Download)
		r.Post("/graduations/{id}/site-password/verify", d.Graduations.VerifySitePassword)
		r.Post("/graduations/{id}/students/{studentId}/access", d.Roster.VerifyAccess)
		r.Get("/links/{linkId}", d.Roster.ResolveLink)

		// Editors.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEditor)

			r.With(middleware.Chain(limit("booklet", d.RateLimit.BookletPerMinute))).
				Post("/booklets", d.Booklets.Generate)

			r.Post("/graduations", d.Graduations.Create)
			r.Get("/graduations", d.Graduations.List)

			const g = "/graduations/{id}"
			r.Get(g, d.Graduations.Get)
			r.Patch(g, d.Graduations.Update)
			r.Delete(g, d.Graduations.Delete)

			r.Post(g+"/editors", d.Graduations.AddEditor)
			r.Delete(g+"/editors/{editorId}", d.Graduations.RemoveEditor)
			r.Put(g+"/availability", d.Graduations.SetAvailability)
			r.Put(g+"/site-password", d.Graduations.SetSitePassword)

			r.Get(g+"/students", d.Roster.ListStudents)
			r.Post(g+"/students", d.Roster.CreateStudent)
			r.Put(g+"/students/order", d.Roster.ReorderStudents)
			r.Patch(g+"/students/{studentId}", d.Roster.UpdateStudent)
			r.Delete(g+"/students/{studentId}", d.Roster.DeleteStudent)

			r.Get(g+"/pages", d.Roster.ListPages)
			r.Post(g+"/pages", d.Roster.CreatePage)
			r.Patch(g+"/pages/{pageId}", d.Roster.UpdatePage)
			r.Delete(g+"/pages/{pageId}", d.Roster.DeletePage)

			r.Post(g+"/uploads", d.Uploads.Create)

			r.Get(g+"/presence", d.Collab.Presence)
			r.Post(g+"/presence", d.Collab.Heartbeat)
			r.Method(http.MethodGet, g+"/presence/ws", d.Presence)

			r.Get(g+"/locks", d.Collab.ListLocks)
			r.Post(g+"/locks", d.Collab.Lock)
			r.Delete(g+"/locks", d.Collab.Unlock)
		})
	})

	return r
}
