package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/leca/image-store/internal/api"
	"github.com/leca/image-store/internal/config"
	"github.com/leca/image-store/internal/handler"
	"github.com/leca/image-store/internal/images"
	"github.com/leca/image-store/internal/storage"
)

// Server holds the application dependencies and HTTP router.
type Server struct {
	Store  storage.Storage
	Config *config.Config
	Router chi.Router
}

// New creates a new Server with a fully configured chi router.
func New(store storage.Storage, cfg *config.Config) *Server {
	s := &Server{Store: store, Config: cfg}

	h := &handler.Handler{
		Images: images.NewService(store),
	}

	r := chi.NewRouter()

	// CORS goes first so preflight OPTIONS requests are answered before logging.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "Content-Disposition", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check.
	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.With(api.BodyLimit(cfg.MaxUploadBytes)).Post("/upload", h.UploadImage)

		// The wildcard keeps sub-paths such as albums/beach.png intact.
		r.Get("/images/*", h.ServeImage)
	})

	s.Router = r
	return s
}

// Health returns a simple health-check response.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
