// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/interfaces/http/handlers"
	"github.com/your-org/bookmarket-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API route groups
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupUserRoutes(rg, db, redisClient, cfg)
	SetupBookRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupReviewRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupUserRoutes sets up user and address related routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)
	addressHandler := handlers.NewAddressHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	users := rg.Group("/users")
	{
		// Guest checkout needs unauthenticated account creation.
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/reviews", reviewHandler.ListUserReviews)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("", userHandler.ListUsers)
			protected.PATCH("/:id", userHandler.UpdateUser)
			protected.DELETE("/:id", userHandler.DeleteUser)

			protected.GET("/:id/addresses", addressHandler.ListAddresses)
			protected.POST("/:id/addresses", addressHandler.CreateAddress)
			protected.GET("/:id/addresses/:address_id", addressHandler.GetAddress)
			protected.PATCH("/:id/addresses/:address_id", addressHandler.UpdateAddress)
			protected.DELETE("/:id/addresses/:address_id", addressHandler.DeleteAddress)
			protected.PUT("/:id/addresses/:address_id/default", addressHandler.SetDefaultAddress)
		}
	}
}

// SetupBookRoutes sets up book listing related routes
func SetupBookRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	bookHandler := handlers.NewBookHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	books := rg.Group("/books")
	books.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		books.GET("", bookHandler.SearchBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.GET("/:id/reviews", reviewHandler.ListBookReviews)

		protected := books.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("", bookHandler.CreateBook)
			protected.PATCH("/:id", bookHandler.UpdateBook)
			protected.PUT("/:id/status", bookHandler.UpdateBookStatus)
			protected.DELETE("/:id", bookHandler.DeleteBook)
		}
	}
}

// SetupOrderRoutes sets up order related routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.PUT("/:id/payment-status", orderHandler.UpdatePaymentStatus)
		orders.PUT("/:id/tracking", orderHandler.SetTrackingNumber)
		orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
	}
}

// SetupReviewRoutes sets up review related routes
func SetupReviewRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	reviews := rg.Group("/reviews")
	{
		reviews.GET("/:id", reviewHandler.GetReview)

		protected := reviews.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("", reviewHandler.CreateReview)
			protected.PATCH("/:id", reviewHandler.UpdateReview)
			protected.DELETE("/:id", reviewHandler.DeleteReview)
		}
	}
}
