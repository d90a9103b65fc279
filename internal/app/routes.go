package app

import (
	"github.com/shahvandan19/Bookly/internal/auth"
	"github.com/shahvandan19/Bookly/internal/cache"
	"github.com/shahvandan19/Bookly/internal/config"
	"github.com/shahvandan19/Bookly/internal/handlers"
	"github.com/shahvandan19/Bookly/internal/repo"
	"github.com/shahvandan19/Bookly/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Setup registers all routes on the given engine. Public routes are an
// explicit allow-list: root, health, version, swagger, signup and login.
// Everything under /users requires a valid bearer token.
func Setup(r *gin.Engine, cfg config.Config, client *mongo.Client, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL.Duration())
	userRepo := repo.NewMongoUserRepo(client.Database(cfg.Mongo.Database))
	userCache := cache.NewUserCache(rdb, cfg.Redis.DefaultTTL.Duration())
	userSvc := service.NewUserService(userRepo, userCache)
	userHandler := handlers.NewUserHandler(userSvc, tokens)

	r.POST("/signup", userHandler.Signup)
	r.POST("/login", userHandler.Login)

	users := r.Group("/users", auth.RequireToken(tokens))
	users.GET("", userHandler.ListUsers)
	users.DELETE("", auth.RequireAdminKey(cfg.Auth.AdminKey), userHandler.DeleteAllUsers)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Bookly API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
