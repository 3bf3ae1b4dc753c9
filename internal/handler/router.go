package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/foodshare/foodshare-api/internal/auth"
	"github.com/foodshare/foodshare-api/internal/config"
	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/web"
)

// NewRouter assembles the HTTP surface: auth endpoints, token-gated listing
// endpoints with role checks, a health probe, and the embedded client UI.
func NewRouter(
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
	authHandler *AuthHandler,
	listingHandler *ListingHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(*logger))
	r.Use(RequestID)
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request handled")
	}))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", authHandler.Register)
			ar.Post("/login", authHandler.Login)
		})

		api.Route("/listings", func(lr chi.Router) {
			// Apply auth to the whole group once; per-route role
			// checks sit on the mutating endpoints.
			lr.Use(Authenticate(jwtAuth, tokenCfg.Secret))

			lr.Get("/", listingHandler.List)
			lr.With(RequireRole(model.RoleDonor, model.RoleAdmin)).
				Post("/", listingHandler.Create)
			lr.With(RequireRole(model.RoleNGO, model.RoleAdmin)).
				Put("/claim/{id}", listingHandler.Claim)
		})
	})

	// Client UI: embedded static pages consuming the JSON API.
	r.Handle("/*", web.Handler())

	return r
}
