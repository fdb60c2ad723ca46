package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires the router: the JSON API under /v1 and the catch-all
// display route for the public site.
//
// Authentication is method-gated, not route-gated: within /v1 every
// POST/PUT/DELETE requires a valid session token while GETs stay
// public. Only the login endpoint is mounted outside the auth
// middleware, since it is what produces tokens in the first place.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/v1", func(v1 chi.Router) {
		v1.Post("/user/login", h.login)

		v1.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/pages", func(r chi.Router) {
				r.Post("/", h.createPage)
				r.Get("/", h.listPages)
				r.Get("/{id}", h.getPage)
				r.Get("/{id}/modules", h.getPageJoinModules)
				r.Put("/{id}", h.updatePage)
				r.Delete("/{id}", h.deletePage)
			})

			r.Route("/modules", func(r chi.Router) {
				r.Post("/", h.createModule)
				r.Get("/", h.listModules)
				r.Get("/{id}", h.getModule)
				r.Put("/{id}", h.updateModule)
				r.Delete("/{id}", h.deleteModule)
				r.Get("/category/{id}", h.listModulesByCategory)
			})

			r.Route("/category", func(r chi.Router) {
				r.Post("/", h.createCategory)
				r.Get("/{id}", h.getCategory)
				r.Put("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			r.Route("/user", func(r chi.Router) {
				r.Post("/", h.createUser)
				r.Delete("/logout", h.logout)
				r.Get("/{id}", h.getUser)
				r.Put("/{id}", h.updateUser)
				r.Delete("/{id}", h.deleteUser)
			})

			r.Route("/config", func(r chi.Router) {
				r.Get("/", h.listConfig)
				r.Put("/", h.putConfigEntry)
				r.Get("/{key}", h.getConfigEntry)
				r.Put("/{key}", h.putConfigEntry)
				r.Delete("/{key}", h.deleteConfigEntry)
			})

			r.Route("/localConfig", func(r chi.Router) {
				r.Get("/", h.readLocalConfig)
				r.Put("/", h.updateLocalConfig)
			})
		})
	})

	router.Get("/*", h.displayPage)

	return router
}
