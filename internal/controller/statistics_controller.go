package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	StatisticsService *service.StatisticsService
	LessonStats       *service.LessonStatsService
}

func NewStatisticsController(statisticsService *service.StatisticsService, lessonStats *service.LessonStatsService) *StatisticsController {
	return &StatisticsController{
		StatisticsService: statisticsService,
		LessonStats:       lessonStats,
	}
}

// @Summary 获取测验统计
// @Description 基于全部尝试现算测验维度聚合
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{quizId}/statistics [get]
func (c *StatisticsController) GetQuizStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stat, err := c.StatisticsService.GetQuizStatistics(ctx.Param("quizId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stat)
}

// @Summary 获取用户测验统计
// @Description 按 (用户, 测验) 分组聚合；普通用户只能查自己，管理员可查任意用户或全量
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param userId query string false "用户ID (仅管理员)"
// @Param quizId query string false "测验ID"
// @Success 200 {object} util.Response
// @Router /api/statistics/user-quiz [get]
func (c *StatisticsController) GetUserQuizStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := ctx.Query("userId")
	isAdmin := user.Role == model.Admin

	// 非管理员固定查询自己
	if !isAdmin {
		if userID != "" && userID != user.UserID {
			util.Forbidden(ctx)
			return
		}
		userID = user.UserID
	}

	stats, err := c.StatisticsService.GetUserQuizStatistics(userID, ctx.Query("quizId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 获取课时参与度统计
// @Description 课时维度的浏览/完成/时长聚合
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path string true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/statistics [get]
func (c *StatisticsController) GetLessonStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stat, err := c.LessonStats.GetLessonStatistics(ctx.Param("lessonId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stat)
}
