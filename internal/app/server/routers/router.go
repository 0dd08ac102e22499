package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/server/handlers/origin"
	"ftaorigin/internal/app/server/handlers/part"
	"ftaorigin/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	partHandler *part.PartHandler,
	originHandler *origin.OriginHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fta-origin",
			"message": "Service is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		parts := v1.Group("/parts")
		{
			parts.GET("", partHandler.List)
			parts.POST("", partHandler.Create)
			parts.GET("/:id", partHandler.Get)
			parts.GET("/:id/bom", partHandler.BOM)
		}

		boms := v1.Group("/boms")
		{
			boms.GET("", partHandler.ListEdges)
			boms.POST("", partHandler.CreateEdge)
		}

		determinations := v1.Group("/determinations")
		{
			determinations.GET("", originHandler.History)
			determinations.POST("", originHandler.Determine)
			determinations.POST("/jobs", originHandler.SubmitJob)
		}
	}

	return r
}
