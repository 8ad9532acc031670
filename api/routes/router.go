package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartshop/storefront-gateway/api/controllers"
	"github.com/smartshop/storefront-gateway/api/middleware"
	cartsvc "github.com/smartshop/storefront-gateway/internal/cart"
	checkoutsvc "github.com/smartshop/storefront-gateway/internal/checkout"
	"github.com/smartshop/storefront-gateway/internal/identity"
	"github.com/smartshop/storefront-gateway/pkg/config"
	"github.com/smartshop/storefront-gateway/pkg/enums"
	"github.com/smartshop/storefront-gateway/pkg/logger"
	"github.com/smartshop/storefront-gateway/pkg/metrics"
	"github.com/smartshop/storefront-gateway/pkg/redis"
)

// CommerceAPI bundles the upstream surfaces the routes hand to controllers.
// Satisfied by *upstream.Client.
type CommerceAPI interface {
	controllers.CatalogBrowser
	controllers.ProfileReader
	controllers.ClientAdmin
	controllers.ProductAdmin
	controllers.OrderAdmin
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redis.Pinger,
	sessionManager identity.Manager,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	commerce CommerceAPI,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, sessionManager, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(sessionManager, cfg.Session, logg))
			r.Post("/logout", controllers.AuthLogout(sessionManager, cartService, cfg.Session, logg))
			r.Get("/me", controllers.AuthMe(logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(logg))

			r.Get("/products", controllers.ProductsList(commerce, logg))
			r.Get("/products/{productId}", controllers.ProductDetail(commerce, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(logg, enums.RoleClient))

			r.Get("/profile", controllers.ClientProfile(commerce, logg))
			r.Get("/orders", controllers.ClientOrderHistory(commerce, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/items", controllers.CartAdd(cartService, logg))
				r.Patch("/items/{productId}", controllers.CartAdjust(cartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemove(cartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, sessionManager, logg))
		r.Use(middleware.Guard(logg, enums.RoleAdmin))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.AdminClientList(commerce, logg))
			r.Post("/", controllers.AdminClientCreate(commerce, logg))
			r.Put("/{clientId}", controllers.AdminClientUpdate(commerce, logg))
			r.Delete("/{clientId}", controllers.AdminClientDelete(commerce, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(commerce, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(commerce, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(commerce, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(commerce, logg))
			r.Put("/{orderId}/confirm", controllers.AdminOrderConfirm(commerce, logg))
			r.Put("/{orderId}/cancel", controllers.AdminOrderCancel(commerce, logg))
			r.Delete("/{orderId}", controllers.AdminOrderDelete(commerce, logg))
		})
	})

	return r
}
