package router

import (
	"net/http"
	"time"

	"github.com/kaziabulhasib/EasyPay-server/internal/config"
	"github.com/kaziabulhasib/EasyPay-server/internal/handler"
	"github.com/kaziabulhasib/EasyPay-server/internal/middleware"
	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine and wires handlers to routes.
func SetupRouter(cfg *config.Config, repo repository.UserRepository) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// cookie 鉴权需要带凭证的 CORS
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	authService := service.NewAuthService(
		repo,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpireHours)*time.Hour,
	)
	secureCookie := cfg.Server.Mode == gin.ReleaseMode
	authHandler := handler.NewAuthHandler(authService, secureCookie)
	userHandler := handler.NewUserHandler(authService)

	// health check
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "server is running")
	})

	// 注册 / 登录（不需要鉴权）
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// 需要登录才能访问的接口
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	protected.GET("/users", userHandler.ListUsers)
	protected.GET("/payment", userHandler.ListPayments)
	protected.GET("/me", userHandler.GetMe)

	return r
}
