package http

import (
	"net/http"

	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions collects what NewRouter wires together.
type RouterOptions struct {
	Handler     *Handler
	Guard       *Guard
	Metrics     *Metrics
	Logger      logging.Logger
	MaxBodySize int64
}

func NewRouter(o RouterOptions) http.Handler {
	h, g := o.Handler, o.Guard

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(o.Logger))
	r.Use(o.Metrics.Middleware)
	r.Use(recoverer(o.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Access-Token", "X-Requested-With"},
		MaxAge:         300,
	}))
	r.Use(limitBody(o.MaxBodySize))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", o.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.withID(h.getProduct))
		r.Get("/instruments", h.listInstruments)
		r.Get("/instruments/{id}", h.withID(h.getInstrument))
		r.Get("/professors", h.listProfessors)
		r.Get("/professors/{id}", h.withID(h.getProfessor))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.login)
			r.With(g.Authenticate).Get("/profile", h.getProfile)
			r.With(g.Authenticate).Put("/profile", h.updateProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(g.Authenticate)

				r.Post("/products", h.createProduct)
				r.Put("/products/{id}", h.withID(h.updateProduct))
				r.Delete("/products/{id}", h.withID(h.deleteProduct))

				r.Post("/instruments", h.createInstrument)
				r.Put("/instruments/{id}", h.withID(h.updateInstrument))
				r.Delete("/instruments/{id}", h.withID(h.deleteInstrument))

				r.Post("/professors", h.createProfessor)
				r.Put("/professors/{id}", h.withID(h.updateProfessor))
				r.Delete("/professors/{id}", h.withID(h.deleteProfessor))
			})

			r.Route("/admins", func(r chi.Router) {
				r.Use(g.RequireOwner)

				r.Post("/", h.createAdmin)
				r.Get("/", h.listAdmins)
				r.Get("/{id}", h.getAdmin)
				r.Put("/{id}", h.updateAdmin)
				r.Delete("/{id}", h.deleteAdmin)
			})
		})
	})

	return r
}
