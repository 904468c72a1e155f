package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"jobeditor/internal/http/handlers"
	"jobeditor/internal/middleware"
)

// Options configures the middleware stack around the handlers.
type Options struct {
	JWTSecret       string
	CORSOrigins     []string
	RateLimitPerMin int
	DefaultLocale   string
	Country         middleware.CountryLookup
	Observe         middleware.RequestObserver
	Metrics         http.Handler
	Log             zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Log, opts.Observe),
		middleware.CORS(opts.CORSOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(
			middleware.RateLimit(opts.RateLimitPerMin),
			middleware.I18N(opts.DefaultLocale, opts.Country),
			middleware.AuthJWT(opts.JWTSecret),
		)

		r.Post("/jobs/new/edit-sessions", app.OpenNewSession)
		r.Post("/jobs/{jobID}/edit-sessions", app.OpenSession)

		r.Route("/edit-sessions/{sid}", func(r chi.Router) {
			r.Get("/", app.GetSession)
			r.Delete("/", app.DiscardSession)
			r.Patch("/fields", app.SetField)
			r.Post("/collections/{field}", app.AddCollectionItem)
			r.Delete("/collections/{field}", app.RemoveCollectionItem)
			r.Post("/questions", app.AddQuestion)
			r.Put("/questions/{qid}", app.UpdateQuestion)
			r.Delete("/questions/{qid}", app.RemoveQuestion)
			r.Post("/questions/{qid}/options", app.AddOption)
			r.Delete("/questions/{qid}/options", app.RemoveOption)
			r.Post("/save", app.RequestSave)
			r.Post("/cancel", app.CancelSave)
			r.Post("/confirm", app.ConfirmSave)
		})

		r.Get("/settings/posting-defaults", app.GetPostingDefaults)
		r.With(middleware.RequireRole(middleware.RoleAdmin)).Put("/settings/posting-defaults", app.PutPostingDefaults)
	})

	return r
}
