package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/forum/internal/setup"
	mw "github.com/itchan-dev/forum/internal/middleware"
	"github.com/itchan-dev/forum/internal/middleware/metrics"
	rl "github.com/itchan-dev/forum/internal/middleware/ratelimiter"
)

// New creates and configures the chi router with all the routes.
// The guest-facing mutations sit behind NeedAuth, which redirects to the login path.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.RequestID)
	r.Use(chi_middleware.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(metrics.Middleware)

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// JSON API only, no scripts/styles needed
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, "default-src 'none'; frame-ancestors 'none'"))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if deps.AuthLimiter != nil {
			r.Use(mw.RateLimit(deps.AuthLimiter, mw.GetIP))
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
	r.Get("/login", h.LoginPrompt)
	if lp := deps.Config.Public.LoginPath; lp != "" && lp != "/login" {
		r.Get(lp, h.LoginPrompt)
	}
	r.Post("/logout", h.Logout)

	r.Get("/channels", h.ListChannels)
	r.Get("/channels/{slug}", h.GetChannel)
	r.Get("/replies/{id}", h.GetReply)
	r.Get("/threads", h.ListThreads)
	r.Get("/threads/{channel}", h.ListChannelThreads)
	r.Get("/threads/{channel}/{id}", h.GetThread)

	r.Group(func(r chi.Router) {
		r.Use(authMw.NeedAuth())

		r.With(limit(deps.ThreadLimiter)).Post("/threads", h.CreateThread)

		createReply := limit(deps.ReplyLimiter)(http.HandlerFunc(h.CreateReply))
		r.Method(http.MethodPost, "/threads/{id}/replies", createReply)
		r.Method(http.MethodPost, "/threads/{channel}/{id}/replies", createReply)

		r.Delete("/threads/{id}", h.DeleteThread)
		r.Delete("/threads/{channel}/{id}", h.DeleteThread)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Post("/channels", h.CreateChannel)
	})

	return r
}

// limit rate limits accepted requests per signed-in user; a nil limiter disables it.
func limit(limiter *rl.UserRateLimiter) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.RateLimitAccepted(limiter, mw.GetUserIDFromContext)
}
