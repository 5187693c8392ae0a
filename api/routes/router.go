package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brewthree/brewpos-backend/api/controllers"
	"github.com/brewthree/brewpos-backend/api/middleware"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Health   *controllers.Health
	Products *controllers.Products
	Cart     *controllers.Cart
	Orders   *controllers.Orders
	Stats    *controllers.Stats
	Users    *controllers.Users
}

// New assembles the full API router.
func New(c Controllers, log *logger.Logger, httpMetrics *metrics.HTTPMetrics, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log, httpMetrics))
	r.Use(middleware.Recoverer(log))

	r.Get("/healthz", c.Health.Live)
	r.Get("/readyz", c.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/users", c.Users.Register)
		r.Post("/users/login", c.Users.Login)

		r.Get("/products", c.Products.List)
		r.Get("/products/{productID}", c.Products.Get)
		r.Post("/products", c.Products.Create)
		r.Patch("/products/{productID}", c.Products.Update)
		r.Put("/products/{productID}/availability", c.Products.SetAvailability)

		r.Get("/stats", c.Stats.Report)

		r.Group(func(r chi.Router) {
			r.Use(middleware.UserIdentity)

			r.Get("/cart", c.Cart.Get)
			r.Post("/cart/items", c.Cart.AddItem)
			r.Put("/cart/items/{productID}", c.Cart.UpdateItem)
			r.Delete("/cart/items/{productID}", c.Cart.RemoveItem)
			r.Delete("/cart", c.Cart.Clear)

			r.Post("/orders", c.Orders.Commit)
			r.Get("/orders", c.Orders.ListMine)
			r.Get("/orders/all", c.Orders.ListAll)
			r.Get("/orders/{orderID}", c.Orders.Get)
			r.Delete("/orders/{orderID}", c.Orders.Close)
		})
	})

	return r
}
