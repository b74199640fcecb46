package routes

import (
	"food-store/cart"
	"food-store/controllers"
	"food-store/middleware"
	"food-store/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newCartManager picks the cart persistence backend: redis when available,
// local disk otherwise. Either way carts survive a restart.
func newCartManager() *cart.Manager {
	return cart.NewManager(func(sessionID string) cart.Storage {
		if models.RedisClient != nil {
			return cart.NewRedisStorage(models.RedisClient, sessionID)
		}
		return cart.NewFileStorage("./data/carts", sessionID)
	})
}

func SetupRoutes(router *gin.Engine) {
	manager := newCartManager()

	authCtrl := controllers.NewAuthController()
	menuCtrl := controllers.NewMenuController()
	cartCtrl := controllers.NewCartController(manager)
	checkoutCtrl := controllers.NewCheckoutController(manager)
	webhookCtrl := controllers.NewWebhookController()
	historyCtrl := controllers.NewHistoryController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/menu", menuCtrl.GetAllMenuItems)
	router.GET("/menu/:id", menuCtrl.GetMenuItemByID)

	router.GET("/cart", cartCtrl.GetCart)
	router.POST("/cart/items", cartCtrl.AddItem)
	router.POST("/cart/items/:id/increment", cartCtrl.IncrementItem)
	router.POST("/cart/items/:id/decrement", cartCtrl.DecrementItem)
	router.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
	router.DELETE("/cart", cartCtrl.ClearCart)

	router.GET("/webhook/stripe", webhookCtrl.Probe)
	router.POST("/webhook/stripe", webhookCtrl.HandleStripe)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/checkout", checkoutCtrl.Checkout)
		auth.POST("/checkout/complete", checkoutCtrl.CompleteCheckout)
		auth.GET("/orders", historyCtrl.GetOrders)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", menuCtrl.DeleteMenuItem)
	}
}
