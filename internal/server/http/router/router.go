package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/handlers"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CampusFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/stream"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	fitnessHandler := handlers.NewFitnessHandler(facade)
	spendingHandler := handlers.NewSpendingHandler(facade)
	analyticsHandler := handlers.NewAnalyticsHandler(facade)
	streamHandler := handlers.NewStreamHandler(facade, 0)

	student := middleware.RequireRole(model.RoleStudent)
	staff := middleware.RequireRole(model.RoleCrew, model.RoleManagement)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	api.GET("/canteens", menuHandler.Canteens)
	api.GET("/menu/:canteen_id", menuHandler.Menu)
	api.GET("/menu/item/:item_id", menuHandler.Item)

	secured := api.Group("")
	secured.Use(middleware.AuthRequired(facade))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/menu", middleware.RequireRole(model.RoleManagement), menuHandler.Create)
	secured.PATCH("/menu/:item_id", staff, menuHandler.Update)

	orders := secured.Group("/orders")
	orders.POST("", student, orderHandler.Create)
	orders.POST("/:id/verify-payment", student, orderHandler.VerifyPayment)
	orders.GET("/my", student, orderHandler.Mine)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", staff, orderHandler.SetStatus)
	orders.GET("/pending/:canteen_id", staff, orderHandler.Pending)
	orders.GET("/priority/:canteen_id", staff, orderHandler.Priority)
	orders.GET("/token/:token", middleware.RequireRole(model.RoleCrew), orderHandler.ResolveToken)

	secured.POST("/fitness/protein-plan", fitnessHandler.ProteinPlan)

	spending := secured.Group("/spending", student)
	spending.GET("/analytics", spendingHandler.Analytics)
	spending.GET("/bills", spendingHandler.Bills)

	management := secured.Group("/management/analytics", middleware.RequireRole(model.RoleManagement))
	management.GET("/revenue", analyticsHandler.Revenue)
	management.GET("/top-items", analyticsHandler.TopItems)

	stream := secured.Group("/stream")
	stream.GET("/canteen/:canteen_id", staff, streamHandler.Canteen)
	stream.GET("/student", student, streamHandler.Student)

	return engine
}
