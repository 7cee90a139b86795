package router

import (
	"net/http"
	"time"

	"shop-service/internal/handlers"
	"shop-service/internal/middleware"
	"shop-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Services: всё, что нужно роутеру от слоя бизнес-логики.
type Services struct {
	Auth          service.AuthService
	Catalog       service.CatalogService
	Cart          service.CartService
	Orders        service.OrderService
	Ratings       service.RatingService
	Consultations service.ConsultationService
}

func Router(svc Services, requestTimeout time.Duration, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	productHandler := handlers.NewProductHandler(svc.Catalog, svc.Ratings, log)
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Orders, log)
	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	serviceHandler := handlers.NewServiceHandler(svc.Catalog, log)
	consultationHandler := handlers.NewConsultationHandler(svc.Consultations, log)

	requireAuth := middleware.AuthRequired(svc.Auth, log)

	api := r.Group("/api", middleware.Timeout(requestTimeout))

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/category/:category", productHandler.ListByCategory)
		products.GET("/user/rateable", requireAuth, productHandler.Rateable)
		products.GET("/:id", productHandler.Get)
		products.GET("/:id/stock", productHandler.Stock)
		products.GET("/:id/ratings", productHandler.Ratings)
		products.POST("", requireAuth, productHandler.Create)
		products.PATCH("/:id/stock", requireAuth, productHandler.UpdateStock)
		products.POST("/:id/rating", requireAuth, productHandler.AddRating)
	}

	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", cartHandler.List)
		cart.POST("/add", cartHandler.Add)
		cart.PATCH("/update/:itemId", cartHandler.Update)
		cart.DELETE("/remove/:itemId", cartHandler.Remove)
		cart.POST("/checkout", cartHandler.Checkout)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.PATCH("/:id/cancel", orderHandler.Cancel)
		orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	}

	services := api.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.GET("/category/:category", serviceHandler.ByCategory)
		services.GET("/:id", serviceHandler.Get)
		services.POST("", requireAuth, serviceHandler.Create)
	}

	consultations := api.Group("/consultations")
	{
		consultations.GET("/types", consultationHandler.Types)
		consultations.GET("/design-categories", consultationHandler.DesignCategories)
		consultations.GET("/design-styles", consultationHandler.DesignStyles)
		consultations.POST("", requireAuth, consultationHandler.Create)
		consultations.GET("", requireAuth, consultationHandler.List)
		consultations.GET("/:id", requireAuth, consultationHandler.Get)
		consultations.PATCH("/:id/status", requireAuth, consultationHandler.UpdateStatus)
	}

	return r
}
