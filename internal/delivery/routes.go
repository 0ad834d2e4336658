package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type RouterConfig struct {
	APIToken        string
	RateLimitPerMin int
}

func NewRouter(h *SessionHandler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
	}))
	r.Use(RequestIDMiddleware)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	RegisterRoutes(r, h, cfg)
	return r
}

func RegisterRoutes(r chi.Router, h *SessionHandler, cfg RouterConfig) {
	r.Route("/sessions", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware, AuthMiddleware(cfg.APIToken))
		if cfg.RateLimitPerMin > 0 {
			pr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
		}

		pr.Post("/", h.Create)
		pr.Get("/{id}", h.Get)
		pr.Delete("/{id}", h.Delete)
		pr.Post("/{id}/clear", h.Clear)

		pr.Post("/{id}/document", h.UploadDocument)
		pr.Get("/{id}/document/filled", h.DownloadFilled)
		pr.Post("/{id}/voice", h.Voice)
		pr.Post("/{id}/ask", h.Ask)

		pr.Get("/{id}/quota", h.Quota)
		// no token, no reset: the route stays admin-only
		if cfg.APIToken != "" {
			pr.Post("/{id}/quota/reset", h.ResetQuota)
		}
	})
}
