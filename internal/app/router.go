package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

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
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 作答记录
		authGroup.POST("/attempts/quiz", c.attempt.SubmitQuizAttempt)
		authGroup.POST("/attempts/exercise", c.attempt.SubmitExerciseAttempt)
		authGroup.GET("/attempts", c.attempt.ListAttempts)

		// 课时进度
		authGroup.POST("/lessons/:lessonId/events", c.tracking.RecordLessonEvent)

		// 统计与排行榜
		authGroup.GET("/quizzes/:quizId/statistics", c.statistics.GetQuizStatistics)
		authGroup.GET("/quizzes/:quizId/leaderboard", c.leaderboard.GetLeaderboard)
		authGroup.GET("/statistics/user-quiz", c.statistics.GetUserQuizStatistics)

		// 课时参与度（教师端看板）
		authGroup.GET("/lessons/:lessonId/statistics",
			middleware.RoleMiddleware(model.Teacher),
			c.statistics.GetLessonStatistics)
	}
}
