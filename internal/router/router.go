package router

import (
	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/config"
	"github.com/haien/ccs/internal/handler"
	"github.com/haien/ccs/internal/metrics"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metrics.Middleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "charity-contribution-service",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 自报工时与验证请求相关路由
		selfReportedHandler := handler.NewSelfReportedHandler(db)
		selfReported := v1.Group("/self-reported-hours")
		{
			selfReported.POST("", selfReportedHandler.CreateSelfReportedHours)
			selfReported.PUT("/:id", selfReportedHandler.UpdateSelfReportedHours)
			selfReported.DELETE("/:id", selfReportedHandler.DeleteSelfReportedHours)
			selfReported.POST("/:id/validation-request", selfReportedHandler.RequestValidation)
		}
		validationRequests := v1.Group("/validation-requests")
		{
			validationRequests.POST("/:id/respond", selfReportedHandler.RespondToValidation)
			validationRequests.POST("/:id/cancel", selfReportedHandler.CancelValidation)
		}

		// 统一贡献与捐赠相关路由
		contributionHandler := handler.NewContributionHandler(db)
		v1.GET("/contributions", contributionHandler.GetUnifiedContributions)

		// 用户相关路由
		statsHandler := handler.NewStatsHandler(db)
		users := v1.Group("/users")
		{
			users.GET("/:id/stats", statsHandler.GetUserContributionStats)
			users.GET("/:id/donations", contributionHandler.GetUserDonations)
			users.GET("/:id/self-reported-hours", selfReportedHandler.GetVolunteerSelfReportedHours)
		}

		// 组织相关路由
		organizations := v1.Group("/organizations")
		{
			organizations.GET("/:id/validation-requests", selfReportedHandler.GetPendingValidationRequests)
		}

		// 平台统计与排行榜路由
		v1.GET("/stats", statsHandler.GetGlobalContributionStats)

		leaderboardHandler := handler.NewLeaderboardHandler(db)
		leaderboard := v1.Group("/leaderboard")
		{
			leaderboard.GET("/volunteers", leaderboardHandler.GetVolunteerLeaderboard)
			leaderboard.GET("/donors", leaderboardHandler.GetDonorLeaderboard)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
