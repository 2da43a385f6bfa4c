package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	custommiddleware "github.com/avolkov/pos-admin/internal/middleware"
)

// SetupRouter configures the HTTP routes and middleware of the service.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	loginLimit := custommiddleware.RateLimit(rate.NewLimiter(rate.Limit(5), 10))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimit)
			r.Post("/sessions/admin", h.AdminLogin)
			r.Post("/sessions/pos", h.POSLogin)
		})
		r.Delete("/session", h.Logout)

		r.Post("/pos-businesses", h.RegisterBusiness)
		r.Get("/pos-businesses", h.ListPublicBusinesses)
		r.Get("/pos-businesses/{id}", h.GetPublicBusiness)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Authenticate)

			r.Get("/session/principal", h.CurrentPrincipal)

			r.Route("/admin", func(r chi.Router) {
				r.Use(custommiddleware.RequireAdmin)

				r.Get("/pos-businesses", h.ListAllBusinesses)
				r.Post("/pos-businesses/{id}/approve", h.ApproveBusiness)
				r.Post("/pos-businesses/{id}/reject", h.RejectBusiness)
				r.Delete("/pos-businesses/{id}", h.DeleteBusiness)
				r.Get("/stats", h.AdminStats)
			})

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequirePOS)

				r.Get("/catalog", h.ListCatalog)
				r.Post("/catalog", h.CreateProduct)
				r.Put("/catalog/{id}", h.UpdateProduct)
				r.Delete("/catalog/{id}", h.DeleteProduct)
				r.Put("/catalog/{id}/stock", h.SetStock)

				r.Post("/checkout", h.Checkout)

				r.Get("/sales/daily", h.DailySales)
				r.Get("/sales/range", h.RangeSales)

				r.Put("/settings/currency", h.UpdateCurrency)
				r.Put("/settings/business-info", h.UpdateBusinessInfo)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
