package routes

import (
	"expvar"
	"net/http"

	"orders-api/controllers"
	"orders-api/middleware"
	"orders-api/models"
	"orders-api/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Dependencies struct {
	AuthService  *services.AuthService
	UserService  *services.UserService
	OrderService *services.OrderService
	LoginLimiter middleware.Limiter
}

// SetupRoutes registers the API. Reads are public; every create, update and
// delete requires a bearer token, except signup and login.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authCtrl := controllers.NewAuthController(deps.AuthService)
	userCtrl := controllers.NewUserController(deps.UserService)
	orderCtrl := controllers.NewOrderController(deps.OrderService)

	requireToken := middleware.AuthMiddleware(deps.AuthService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"}) })
	router.GET("/debug/vars", gin.WrapH(expvar.Handler()))

	login := []gin.HandlerFunc{authCtrl.Login}
	if deps.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{middleware.RateLimit("login", deps.LoginLimiter)}, login...)
	}
	router.POST("/user/login", login...)
	router.GET("/user/me", requireToken, authCtrl.Me)

	users := router.Group("/users")
	{
		users.GET("", userCtrl.GetAllUsers)
		users.POST("", userCtrl.CreateUser)
		users.GET("/search", userCtrl.SearchUsers)
		users.GET("/:id", userCtrl.GetUserByID)
		users.PUT("/:id", requireToken, userCtrl.UpdateUser)
		users.DELETE("/:id", requireToken, userCtrl.DeleteUser)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.POST("", requireToken, orderCtrl.CreateOrder)
		orders.GET("/search", orderCtrl.SearchOrders)
		orders.GET("/:id", orderCtrl.GetOrderByID)
		orders.PUT("/:id", requireToken, orderCtrl.UpdateOrder)
		orders.DELETE("/:id", requireToken, orderCtrl.DeleteOrder)
	}
}
