package app

import (
	"learnquest_backend/docs"
	"learnquest_backend/internal/config"
	"learnquest_backend/internal/middleware"
	"learnquest_backend/internal/model"
	"learnquest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// catalogue is readable without a token
		public.GET("/courses", c.content.ListCourses)
		public.GET("/modules", c.content.ListModules)
		public.GET("/modules/:moduleId", c.content.GetModule)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// quiz grading
		authGroup.GET("/modules/:moduleId/questions", c.quiz.GetModuleQuestions)
		authGroup.POST("/modules/:moduleId/submit", c.quiz.SubmitQuiz)

		// progression reads
		authGroup.GET("/student/profile", c.gamification.Profile)
		authGroup.GET("/student/progress", c.gamification.Progress)

		// contests
		authGroup.GET("/contests", c.contest.ListContests)
		authGroup.GET("/contests/:contestId/questions", c.contest.GetQuestions)
		authGroup.POST("/contests/:contestId/join", c.contest.Join)
		authGroup.POST("/contests/:contestId/submit", c.contest.Submit)
		authGroup.GET("/contests/:contestId/leaderboard", c.contest.Leaderboard)
		authGroup.GET("/contests/:contestId/result", c.contest.Result)
	}

	// 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/stats", c.admin.Stats)

		admin.POST("/module/create", c.admin.CreateModule)
		admin.PUT("/module/update/:moduleId", c.admin.UpdateModule)
		admin.DELETE("/module/delete/:moduleId", c.admin.DeleteModule)
		admin.GET("/module/:moduleId/questions", c.admin.ListModuleQuestions)

		admin.POST("/question/create", c.admin.CreateQuestion)
		admin.PUT("/question/update/:questionId", c.admin.UpdateQuestion)
		admin.DELETE("/question/delete/:questionId", c.admin.DeleteQuestion)

		admin.POST("/contest/create", c.admin.CreateContest)
		admin.PUT("/contest/update/:contestId", c.admin.UpdateContest)
		admin.DELETE("/contest/delete/:contestId", c.admin.DeleteContest)
		admin.POST("/contest/:contestId/recompute-ranks", c.admin.RecomputeRanks)

		admin.POST("/pdf/upload", c.admin.UploadPDF)
		admin.POST("/pdf/generate-module", c.admin.GenerateModuleFromPDF)
	}
}
