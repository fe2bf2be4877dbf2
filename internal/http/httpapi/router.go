package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter builds the versioned API surface. Auth, locale detection and rate
// limiting come from the internal middleware package; request plumbing from
// chi's.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.I18N("en", lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/google", app.AuthGoogleVerify)
		r.With(middleware.AuthJWT(cfg.JWTSecret)).Post("/logout", app.AuthLogout)
	})

	r.Get("/v1/tools", app.ToolsList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Get("/v1/me", app.Me)
		r.Post("/v1/tools/{tool}", app.ToolRun)
		r.Get("/v1/usage", app.UsageList)
	})

	r.Get("/v1/stats/summary", app.StatsSummary)
	r.Get("/v1/stats/top-tools", app.StatsTopTools)

	return r
}
