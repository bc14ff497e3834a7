package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/gestaoplus/admin-gateway/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.SessionAuth)

			r.Post("/logout", h.Logout)
			r.Get("/session", h.Session)
			r.Get("/dashboard", h.Dashboard)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.Companies)
				r.Post("/", h.CreateCompany)
				r.Get("/{id}", h.Company)
				r.Put("/{id}", h.UpdateCompany)
				r.Delete("/{id}", h.DeleteCompany)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Users)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.User)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Projects)
				r.Post("/", h.CreateProject)
				r.Get("/{id}", h.Project)
				r.Put("/{id}", h.UpdateProject)
				r.Delete("/{id}", h.DeleteProject)
				r.Get("/{id}/complete", h.ProjectTree)
				r.Get("/{id}/activities", h.ProjectActivities)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Post("/", h.CreateActivity)
				r.Get("/{id}", h.Activity)
				r.Put("/{id}", h.UpdateActivity)
				r.Delete("/{id}", h.DeleteActivity)
				r.Patch("/{id}/toggle", h.ToggleActivity)
			})

			r.Route("/lookup", func(r chi.Router) {
				r.Get("/cep/{cep}", h.LookupCEP)
				r.Get("/cnpj/{cnpj}", h.LookupCNPJ)
			})

			r.Post("/assistant", h.Assistant)
		})
	})

	return mux
}
