package http

import (
	"net/http"

	"channelhub/internal/infrastructure/monitoring"
	"channelhub/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AppEnv       string
	RateLimitMax int
}

func NewRouter(
	cfg RouterConfig,
	userHandler *UserHandler,
	channelHandler *ChannelHandler,
	limiter *middleware.RateLimiter,
	collector *monitoring.PrometheusCollector,
	log *zap.Logger,
) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Metrics(collector))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	if cfg.RateLimitMax > 0 {
		r.Use(limiter.Handler())
	}

	users := r.Group("/users")
	{
		users.GET("/all", userHandler.ListUsers)
		users.PUT("/add_to_group/:user_id", userHandler.JoinChannel)
		users.DELETE("/remove_from_group/:user_id", userHandler.LeaveChannel)
		users.GET("/:user_id", userHandler.GetUser)
		users.POST("/", userHandler.CreateUser)
		users.PUT("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)
	}

	channels := r.Group("/channels")
	{
		channels.GET("/all", channelHandler.ListChannels)
		channels.POST("/add", channelHandler.CreateChannel)
		channels.GET("/:channel_id", channelHandler.GetChannel)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
