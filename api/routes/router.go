package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tttsupply/inventory-backend/api/controllers"
	"github.com/tttsupply/inventory-backend/api/middleware"
	"github.com/tttsupply/inventory-backend/internal/assignments"
	"github.com/tttsupply/inventory-backend/internal/auth"
	"github.com/tttsupply/inventory-backend/internal/balances"
	hubsvc "github.com/tttsupply/inventory-backend/internal/hubs"
	"github.com/tttsupply/inventory-backend/internal/ledger"
	"github.com/tttsupply/inventory-backend/internal/notifications"
	productsvc "github.com/tttsupply/inventory-backend/internal/products"
	"github.com/tttsupply/inventory-backend/internal/shipments"
	"github.com/tttsupply/inventory-backend/internal/supplyrequests"
	usersvc "github.com/tttsupply/inventory-backend/internal/users"
	"github.com/tttsupply/inventory-backend/pkg/config"
	"github.com/tttsupply/inventory-backend/pkg/enums"
	"github.com/tttsupply/inventory-backend/pkg/logger"
	"github.com/tttsupply/inventory-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth           auth.Service
	Users          usersvc.Service
	Hubs           hubsvc.Service
	Products       productsvc.Service
	Assignments    assignments.Service
	Ledger         ledger.Service
	Balances       balances.Service
	Notifications  notifications.Service
	SupplyRequests supplyrequests.Service
	Shipments      shipments.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps map[string]controllers.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	adminOnly := middleware.RequireRole(enums.UserRoleAdmin.String(), logg)
	stockRoles := middleware.RequireAnyRole(logg, enums.UserRoleAdmin.String(), enums.UserRoleHubStaff.String())
	shipmentRoles := middleware.RequireAnyRole(logg, enums.UserRoleAdmin.String(), enums.UserRoleSupplier.String())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(svcs.Auth, logg)
		if redisClient != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		// Any authenticated account.
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.With(adminOnly).Post("/", controllers.SendNotification(svcs.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(stockRoles)
			r.Post("/", controllers.RecordTransaction(svcs.Ledger, svcs.Assignments, logg))
			r.Get("/", controllers.ListTransactions(svcs.Ledger, logg))
			r.Get("/daily-out", controllers.DailyOutTotals(svcs.Ledger, logg))
		})

		r.Route("/balances", func(r chi.Router) {
			r.With(stockRoles).Get("/", controllers.HubBalances(svcs.Balances, logg))
			r.With(adminOnly).Get("/global", controllers.GlobalBalances(svcs.Balances, logg))
		})

		r.Route("/hubs", func(r chi.Router) {
			r.With(stockRoles).Get("/{hubID}/skus", controllers.ListAssignedSKUs(svcs.Assignments, logg))

			r.With(adminOnly).Post("/", controllers.CreateHub(svcs.Hubs, logg))
			r.With(adminOnly).Get("/", controllers.ListHubs(svcs.Hubs, logg))
			r.With(adminOnly).Get("/{hubID}", controllers.GetHub(svcs.Hubs, logg))
			r.With(adminOnly).Patch("/{hubID}", controllers.RenameHub(svcs.Hubs, logg))
			r.With(adminOnly).Delete("/{hubID}/skus/{sku}", controllers.UnassignSKU(svcs.Assignments, logg))
		})

		r.With(adminOnly).Post("/assignments", controllers.AssignSKU(svcs.Assignments, logg))

		r.Route("/products", func(r chi.Router) {
			r.With(stockRoles).Get("/", controllers.ListProducts(svcs.Products, logg))
			r.With(stockRoles).Get("/{sku}", controllers.GetProduct(svcs.Products, logg))
			r.With(adminOnly).Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.With(adminOnly).Patch("/{sku}", controllers.UpdateProduct(svcs.Products, logg))
		})

		r.With(stockRoles).Get("/barcodes/{barcode}", controllers.LookupProductByBarcode(svcs.Products, logg))

		r.Route("/supply-requests", func(r chi.Router) {
			r.With(stockRoles).Post("/", controllers.CreateSupplyRequest(svcs.SupplyRequests, logg))
			r.With(stockRoles).Get("/", controllers.ListSupplyRequests(svcs.SupplyRequests, logg))
			r.With(adminOnly).Post("/{requestID}/respond", controllers.RespondSupplyRequest(svcs.SupplyRequests, logg))
		})

		r.Route("/shipments", func(r chi.Router) {
			r.Use(shipmentRoles)
			r.Post("/", controllers.RecordShipment(svcs.Shipments, logg))
			r.Get("/", controllers.ListShipments(svcs.Shipments, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", controllers.CreateUser(svcs.Users, logg))
			r.Get("/", controllers.ListUsers(svcs.Users, logg))
			r.Get("/{userID}", controllers.GetUser(svcs.Users, logg))
			r.Post("/{userID}/active", controllers.SetUserActive(svcs.Users, logg))
			r.Post("/{userID}/reset-password", controllers.ResetUserPassword(svcs.Users, logg))
		})
	})

	return r
}
