// Package api serves the public read API and the token-guarded admin API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/4liaghaie/sait/internal/auth"
	"github.com/4liaghaie/sait/internal/build"
	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/metrics"
	"github.com/4liaghaie/sait/internal/store"
)

// DefaultMaxUploadBytes bounds multipart bodies when Deps leaves it unset.
const DefaultMaxUploadBytes int64 = 10 << 20

// Deps holds all dependencies required to build the router.
type Deps struct {
	Content    *store.ContentStore
	Categories *store.CategoryStore
	Images     *store.ImageStore
	References *store.ReferenceStore

	Sessions   auth.SessionStore
	Password   *auth.PasswordChecker
	SessionTTL time.Duration

	Media    *media.Resolver
	Uploader *media.Uploader
	Logger   logger.Logger

	MaxUploadBytes int64
}

// NewRouter builds the full HTTP handler: status root, public /api reads,
// /admin writes, uploaded files and /metrics.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = 24 * time.Hour
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(locale.Middleware)

	r.Get("/", status)

	r.Route("/api", func(r chi.Router) {
		registerPublicRoutes(r, deps)
	})

	r.Route("/admin", func(r chi.Router) {
		registerSessionRoutes(r, deps)

		r.Group(func(r chi.Router) {
			r.Use(auth.NewBearerMiddleware(deps.Sessions).Authenticate)
			r.Post("/logout", (&sessionAPIHandler{sessions: deps.Sessions, log: deps.Logger}).Logout)
			registerContentRoutes(r, deps)
			registerCategoryRoutes(r, deps)
			registerImageRoutes(r, deps)
			registerReferenceRoutes(r, deps)
		})
	})

	if deps.Uploader != nil {
		r.Handle(deps.Uploader.MountPath+"/*", deps.Uploader.Handler())
	}
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

type statusResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Version string   `json:"version"`
	Docs    []string `json:"docs"`
}

// status answers GET / with a readiness document.
func status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: "Portfolio backend ready",
		Version: build.Version,
		Docs:    []string{"/admin", "/api/about", "/api/logo", "/api/categories", "/api/images", "/api/references"},
	})
}
