package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/identity-service/internal/adapter/handler"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *zap.Logger
}

type RouterConfig struct {
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		userHandler:    cfg.UserHandler,
		authMiddleware: cfg.AuthMiddleware,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		api.GET("", apiInfo)

		users := api.Group("/users")
		{
			users.POST("/register", r.userHandler.Register)
			users.POST("/login", r.userHandler.Login)

			authed := users.Group("")
			authed.Use(r.authMiddleware.RequireAuth())
			{
				authed.GET("/profile", r.userHandler.GetProfile)
				authed.PUT("/profile", r.userHandler.UpdateProfile)
				authed.PUT("/change-password", r.userHandler.ChangePassword)
				authed.DELETE("/profile", r.userHandler.DeleteProfile)
				authed.GET("", r.userHandler.ListUsers)
				authed.GET("/:id", r.userHandler.GetUser)
			}
		}

		api.GET("/stats", r.authMiddleware.RequireAuth(), r.userHandler.Stats)
	}
}

// apiInfo answers the group root with a catalog of the available endpoints.
func apiInfo(c *gin.Context) {
	c.JSON(200, gin.H{
		"service": "identity-service",
		"version": "1.0.0",
		"endpoints": gin.H{
			"users": gin.H{
				"POST /api/v1/users/register":       "register a new user",
				"POST /api/v1/users/login":          "authenticate and obtain a token",
				"GET /api/v1/users/profile":         "current user profile (auth)",
				"PUT /api/v1/users/profile":         "update profile (auth)",
				"PUT /api/v1/users/change-password": "change password (auth)",
				"DELETE /api/v1/users/profile":      "delete account (auth)",
				"GET /api/v1/users":                 "list users (auth)",
				"GET /api/v1/users/:id":             "user by id (auth)",
			},
			"other": gin.H{
				"GET /health":       "health check",
				"GET /api/v1/stats": "user statistics (auth)",
			},
		},
	})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
