package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const compressionLevel = 5

// Init builds the router: public account and health routes, and a group of
// file routes that all pass through the auth middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{"Authorization", "Content-Disposition", traceIDHeader},
			MaxAge:         300,
		}))
	}
	router.Use(middleware.Compress(compressionLevel, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		h.withRequestTimeout(r)

		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/reset-password", h.resetPassword)

		r.Get("/healthz", h.healthz)
		r.Get("/version", h.getServerVersion)
	})

	// routes with authorization and ownership checks
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			h.withRequestTimeout(r)

			r.Get("/files", h.listFiles)
			r.Delete("/delete/{fileId}", h.deleteFile)
		})

		// file bodies are bounded by the upload size limit, not by the
		// request timeout
		r.Post("/upload", h.upload)
		r.Get("/download/{fileId}", h.download)
		r.Get("/preview/{fileId}", h.preview)
		r.Get("/uploads/{name}", h.serveUpload)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// withRequestTimeout bounds the JSON routes of r by the configured request
// timeout.
func (h *Handler) withRequestTimeout(r chi.Router) {
	if h.requestTimeout > 0 {
		r.Use(middleware.Timeout(h.requestTimeout))
	}
}
