// Package httpapi exposes segments, customers, campaigns and statistics
// over REST.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/core/scope"
)

// RouterConfig holds the transport settings NewRouter applies.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the chi router. Middleware order matters: request IDs and
// tracing wrap everything so even recovered panics are logged and traced.
func NewRouter(h *Handler, cfg RouterConfig, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Tracing)
	r.Use(RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", scope.HeaderUserID},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(scope.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/segments", func(r chi.Router) {
			r.Get("/", h.ListSegments)
			r.Post("/", h.CreateSegment)
			r.Post("/preview", h.PreviewSegment)
			r.Get("/{id}", h.GetSegment)
			r.Put("/{id}", h.ReplaceSegment)
			r.Delete("/{id}", h.DeleteSegment)
			r.Get("/{id}/audience", h.SegmentAudience)
		})

		r.Post("/customers", h.IngestCustomers)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.CreateCampaign)
			r.Get("/past", h.PastCampaigns)
			r.Get("/active", h.ActiveCampaigns)
			r.Get("/count", h.CampaignCounts)
			r.Put("/{id}/state", h.SetCampaignState)
		})

		r.Post("/communication-logs/{id}/receipt", h.RecordReceipt)

		r.Get("/statistics/stats", h.Dashboard)
	})

	r.Get("/health", h.Health)

	return r
}
