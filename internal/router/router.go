package router

import (
	"github.com/KamisAyaka/Crowdfunding/internal/contract"
	"github.com/KamisAyaka/Crowdfunding/internal/handler"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/scheduler"
	"github.com/KamisAyaka/Crowdfunding/internal/view"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(
	db *gorm.DB,
	viewLogic *logic.ViewLogic,
	holder *view.Holder,
	refreshJob *scheduler.ViewRefreshJob,
	preparer *contract.Preparer,
) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-view-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目视图路由
		projectHandler := handler.NewProjectHandler(viewLogic, holder, refreshJob)
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.POST("/refresh", projectHandler.RefreshProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/donations", projectHandler.GetProjectDonations)
			projects.GET("/:id/top-donors", projectHandler.GetTopDonors)
		}

		// 提案视图路由
		proposalHandler := handler.NewProposalHandler(viewLogic)
		{
			projects.GET("/:id/proposals", proposalHandler.GetProposals)
			projects.GET("/:id/proposals/:proposalId", proposalHandler.GetProposal)
		}

		// 交易准备路由
		callHandler := handler.NewCallHandler(db, viewLogic, preparer)
		{
			projects.POST("/:id/prepare/complete", callHandler.PrepareComplete)
			projects.POST("/:id/prepare/withdraw", callHandler.PrepareWithdraw)
			projects.POST("/:id/prepare/refund", callHandler.PrepareRefund)
			projects.POST("/:id/prepare/proposal", callHandler.PrepareCreateProposal)
			projects.POST("/:id/proposals/:proposalId/prepare/vote", callHandler.PrepareVote)
			projects.POST("/:id/proposals/:proposalId/prepare/execute", callHandler.PrepareExecute)
			v1.GET("/calls", callHandler.ListCalls)
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
