package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
)

// NewRouter wires the full HTTP surface.
func NewRouter(api *API, allowedOrigins []string, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", api.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", api.GetDashboard)
		r.Get("/progress", api.GetProgress)

		r.Route("/sections", func(r chi.Router) {
			r.Get("/", api.ListSections)
			r.Get("/{id}", api.GetSection)
			r.Put("/{id}/fields/{fieldID}", api.SetField)
			r.Delete("/{id}/fields/{fieldID}", api.ClearField)
			r.Post("/{id}/save", api.SaveSection)
			r.Post("/{id}/advance", api.AdvanceSection)
		})

		r.Post("/navigate", api.Navigate)

		r.Get("/profile", api.GetProfile)
		r.Put("/profile", api.UpdateProfile)

		r.Post("/invite/validate", api.ValidateInvite)

		r.Post("/submit", api.Submit)
		r.Get("/kyc/{customerID}", api.GetKYCStatus)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request", map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"durationMs": time.Since(start).Milliseconds(),
				"requestId":  middleware.GetReqID(r.Context()),
			})
		})
	}
}
