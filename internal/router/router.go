package router

import (
	"net/http"
	"time"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/config"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(cors.Default())

	api := r.Group("/api")

	// 健康检查
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     "CrowdSeed backend API is running!",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Mode,
		})
	})

	// 项目相关路由
	projectHandler := handler.NewProjectHandler(db)
	projects := api.Group("/projects")
	{
		projects.GET("", projectHandler.GetProjects)
		projects.POST("/add", projectHandler.CreateProject)
		projects.GET("/stats/overview", projectHandler.GetPlatformStats)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", projectHandler.UpdateProject)
	}

	// 交易相关路由
	transactionHandler := handler.NewTransactionHandler(db, cfg)
	transactions := api.Group("/transactions")
	{
		transactions.POST("/add", transactionHandler.RecordTransaction)
		transactions.GET("/stats/overview", transactionHandler.GetTransactionStats)
		transactions.GET("/investor/:address", transactionHandler.GetInvestorTransactions)
		transactions.GET("/:projectId", transactionHandler.GetProjectTransactions)
	}

	// 未匹配的路由
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return r
}
