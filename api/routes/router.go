package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avillagomez/backoffice-backend/api/controllers"
	"github.com/avillagomez/backoffice-backend/api/middleware"
	"github.com/avillagomez/backoffice-backend/internal/analytics"
	"github.com/avillagomez/backoffice-backend/internal/catalog"
	"github.com/avillagomez/backoffice-backend/internal/customerorders"
	"github.com/avillagomez/backoffice-backend/internal/orderlists"
	"github.com/avillagomez/backoffice-backend/internal/sales"
	"github.com/avillagomez/backoffice-backend/internal/users"
	"github.com/avillagomez/backoffice-backend/pkg/auth/session"
	"github.com/avillagomez/backoffice-backend/pkg/config"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
	"github.com/avillagomez/backoffice-backend/pkg/metrics"
)

// Services bundles the wired domain services for the HTTP surface.
type Services struct {
	Users          users.Service
	Catalog        catalog.Service
	OrderLists     orderlists.Service
	CustomerOrders customerorders.Service
	Sales          sales.Service
	Analytics      analytics.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	healthChecks map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(),
		middleware.Logging(),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, healthChecks))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Users))
		r.Post("/register", controllers.AuthRegister(svcs.Users))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Users))
		r.Post("/logout", controllers.AuthLogout(svcs.Users))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, sessionChecker))

		r.Route("/wholesalers", func(r chi.Router) {
			r.Get("/", controllers.WholesalerList(svcs.Catalog))
			r.Post("/", controllers.WholesalerCreate(svcs.Catalog))
			r.Put("/{id}", controllers.WholesalerUpdate(svcs.Catalog))
			r.Delete("/{id}", controllers.WholesalerDelete(svcs.Catalog))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog))
			r.Post("/", controllers.ProductCreate(svcs.Catalog))
			r.Post("/bulk-delete", controllers.ProductBulkDelete(svcs.Catalog))
			r.Post("/import", controllers.ProductImport(svcs.Catalog, cfg.Storage.MaxUploadBytes))
			r.Get("/search", controllers.ProductSearch(svcs.Catalog))
			r.Put("/{id}", controllers.ProductUpdate(svcs.Catalog))
			r.Delete("/{id}", controllers.ProductDelete(svcs.Catalog))
		})

		r.Route("/order-lists", func(r chi.Router) {
			r.Get("/", controllers.OrderListHistory(svcs.OrderLists))
			r.Get("/pending", controllers.OrderListPending(svcs.OrderLists))
			r.Post("/finalize", controllers.OrderListFinalizeCadence(svcs.OrderLists))
			r.Post("/items", controllers.OrderListAddItem(svcs.OrderLists))
			r.Put("/items/{itemId}", controllers.OrderListUpdateItem(svcs.OrderLists))
			r.Delete("/items/{itemId}", controllers.OrderListRemoveItem(svcs.OrderLists))
			r.Get("/{id}", controllers.OrderListDetail(svcs.OrderLists))
			r.Delete("/{id}", controllers.OrderListDelete(svcs.OrderLists))
			r.Post("/{id}/finalize", controllers.OrderListFinalize(svcs.OrderLists))
		})

		r.Route("/customer-orders", func(r chi.Router) {
			r.Get("/", controllers.CustomerOrderList(svcs.CustomerOrders))
			r.Post("/", controllers.CustomerOrderCreate(svcs.CustomerOrders))
			r.Get("/product-suggestions", controllers.CustomerOrderProductSuggestions(svcs.CustomerOrders))
			r.Put("/items/{itemId}", controllers.CustomerOrderUpdateItem(svcs.CustomerOrders))
			r.Delete("/items/{itemId}", controllers.CustomerOrderRemoveItem(svcs.CustomerOrders))
			r.Get("/{id}", controllers.CustomerOrderDetail(svcs.CustomerOrders))
			r.Put("/{id}", controllers.CustomerOrderUpdate(svcs.CustomerOrders))
			r.Delete("/{id}", controllers.CustomerOrderDelete(svcs.CustomerOrders))
			r.Post("/{id}/items", controllers.CustomerOrderAddItem(svcs.CustomerOrders))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.SalesCreate(svcs.Sales))
			r.With(middleware.RequireRole(enums.UserRoleOwner)).Get("/", controllers.SalesList(svcs.Sales))
			r.Get("/{id}", controllers.SalesDetail(svcs.Sales))
			r.With(middleware.RequireRole(enums.UserRoleOwner)).Delete("/{id}", controllers.SalesDelete(svcs.Sales))
			r.Post("/{id}/documents", controllers.SalesUploadDocument(svcs.Sales, cfg.Storage.MaxUploadBytes))
			r.Delete("/documents/{documentId}", controllers.SalesDeleteDocument(svcs.Sales))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleOwner))
			r.Get("/", controllers.AnalyticsReport(svcs.Analytics))
		})
	})

	return r
}
