package routes

import (
	"github.com/epicurean/epicurean/app/controllers"
	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/notifications"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/logger"
	"github.com/epicurean/epicurean/pkg/metrics"
	"github.com/epicurean/epicurean/pkg/middleware"
	"github.com/epicurean/epicurean/pkg/rbac"
	"github.com/epicurean/epicurean/pkg/router"
)

// RegisterAPI mounts every HTTP route. kv backs the cart snapshots.
func RegisterAPI(r *router.Router, kv kvstore.Store) {
	users := repositories.NewUserRepository()
	menuRepo := repositories.NewMenuRepository()
	orderRepo := repositories.NewOrderRepository()

	dispatcher := notifications.NewDispatcher(notifications.Hub)
	catalogService := services.NewCatalogService(menuRepo)
	orderService := services.NewOrderService(orderRepo, dispatcher)
	authService := services.NewAuthService(users)

	authController := controllers.NewAuthController(authService, users)
	menuController := controllers.NewMenuController(catalogService, users)
	cartController := controllers.NewCartController(kv, catalogService)
	orderController := controllers.NewOrderController(orderService, users, kv)
	streamController := controllers.NewStreamController(orderRepo, users, notifications.Hub)

	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	api.Get("/menu", "menu.list", menuController.List)
	api.Get("/ws", "stream.ws", streamController.Connect)

	if gqlHandler, err := controllers.NewGraphQLHandler(catalogService, orderService, users); err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", gqlHandler, middleware.OptionalAuth)
	}

	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", authController.Signup)
	auth.Post("/login", "auth.login", authController.Login)
	auth.Get("/profile", "auth.profile", authController.Profile, middleware.Auth)
	auth.Put("/profile", "auth.profile.update", authController.UpdateProfile, middleware.Auth)

	cart := api.Group("/cart", middleware.OptionalAuth)
	cart.Get("", "cart.show", cartController.Show)
	cart.Delete("", "cart.clear", cartController.Clear)
	cart.Post("/items", "cart.add", cartController.AddItem)
	cart.Patch("/items/{itemId}", "cart.update", cartController.UpdateItem)
	cart.Delete("/items/{itemId}", "cart.remove", cartController.RemoveItem)

	orders := api.Group("/orders", middleware.Auth)
	orders.Post("", "orders.checkout", orderController.Checkout)
	orders.Get("", "orders.mine", orderController.MyOrders)
	orders.Get("/stream", "orders.stream", streamController.OrderFeed)
	orders.Get("/{id}", "orders.show", orderController.Show)

	admin := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin))
	admin.Get("/orders", "admin.orders", orderController.All)
	admin.Patch("/orders/{id}/status", "admin.orders.status", orderController.TransitionStatus)
	admin.Post("/menu", "admin.menu.create", menuController.Create)
	admin.Put("/menu/{id}", "admin.menu.update", menuController.Update)
	admin.Delete("/menu/{id}", "admin.menu.delete", menuController.Delete)
}
