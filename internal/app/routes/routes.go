package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Robson2726/Facilitta-sub000/docs"
	"github.com/Robson2726/Facilitta-sub000/internal/app/controllers"
	"github.com/Robson2726/Facilitta-sub000/internal/app/middleware"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// SetupRouter builds the gin engine serving the mobile gateway and the admin surface
func SetupRouter(container *container.ServiceContainer) *gin.Engine {
	log := container.Logger()

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log.Named("http")))

	// LAN clients and the desktop UI call from other origins
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, container)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Rota não encontrada")
	})
	return r
}

// registerRoutes configures every API route
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerGatewayRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerGatewayRoutes registers the unauthenticated mobile endpoints
func registerGatewayRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	cfg := container.Config()

	gateway := api.Group("")
	gateway.Use(middleware.IPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	gateway.GET("/status", controllers.HandleHealthFunc(container, "status"))

	gateway.GET("/encomendas", controllers.HandleGatewayFunc(container, "listPending"))
	gateway.POST("/encomendas", controllers.HandleGatewayFunc(container, "createPackage"))
	gateway.PUT("/encomendas/:id/entregar", controllers.HandleGatewayFunc(container, "deliverPackage"))

	gateway.GET("/usuarios", controllers.HandleGatewayFunc(container, "listUsers"))
	gateway.GET("/moradores", controllers.HandleGatewayFunc(container, "listResidents"))
	gateway.GET("/moradores/sugestoes", controllers.HandleGatewayFunc(container, "suggestResidents"))

	pairing := gateway.Group("/pareamento")
	pairing.Use(middleware.ResponseCache(middleware.ResponseCacheConfig{
		Store:      container.Cache(),
		Expiration: time.Minute,
		Log:        container.Logger().Named("http"),
	}))
	pairing.GET("", controllers.HandlePairingFunc(container, "descriptor"))
	pairing.GET("/qrcode.png", controllers.HandlePairingFunc(container, "qrcode"))

	// login and setup are public but limited harder against guessing
	auth := api.Group("")
	auth.Use(middleware.CombinedRateLimiter(1, 5))
	auth.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
	auth.GET("/setup/status", controllers.HandleJWTFunc(container, "setupStatus"))
	auth.POST("/setup/admin", controllers.HandleJWTFunc(container, "setupAdmin"))
}

// registerAdminRoutes registers the JWT protected desktop endpoints
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthenticateAdmin(container.JWT())...)

	residentGroup := admin.Group("/moradores")
	residentGroup.GET("", controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/busca", controllers.HandleResidentFunc(container, "searchResidents"))
	residentGroup.GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
	residentGroup.POST("", controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
	residentGroup.DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))

	userGroup := admin.Group("/usuarios")
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))
	admin.GET("/porteiros/busca", controllers.HandleUserFunc(container, "searchPorters"))

	packageGroup := admin.Group("/encomendas")
	packageGroup.GET("", controllers.HandlePackageFunc(container, "getPending"))
	packageGroup.GET("/entregues", controllers.HandlePackageFunc(container, "getDelivered"))
	packageGroup.POST("", controllers.HandlePackageFunc(container, "createPackage"))
	packageGroup.POST("/entregar-lote", controllers.HandlePackageFunc(container, "deliverBatch"))
	packageGroup.GET("/:id", controllers.HandlePackageFunc(container, "getPackage"))
	packageGroup.PUT("/:id", controllers.HandlePackageFunc(container, "updatePackage"))
	packageGroup.PUT("/:id/entregar", controllers.HandlePackageFunc(container, "deliverPackage"))
}
