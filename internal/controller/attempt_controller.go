package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// @Summary 提交测验作答
// @Description 记录一次测验尝试；未提供 correctCount 时按得分率估算
// @Tags 尝试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizAttemptRequest true "测验作答"
// @Success 201 {object} util.Response
// @Router /api/attempts/quiz [post]
func (c *AttemptController) SubmitQuizAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.RecordQuizAttempt(user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	monitoring.AttemptCounter.WithLabelValues(string(model.SubjectQuiz)).Inc()
	util.Created(ctx, attempt)
}

// @Summary 提交练习作答
// @Description 记录一次练习尝试并尽力更新课时参与度
// @Tags 尝试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExerciseAttemptRequest true "练习作答"
// @Success 201 {object} util.Response
// @Router /api/attempts/exercise [post]
func (c *AttemptController) SubmitExerciseAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExerciseAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.RecordExerciseAttempt(user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	monitoring.AttemptCounter.WithLabelValues(string(model.SubjectExercise)).Inc()
	util.Created(ctx, attempt)
}

// @Summary 查询自己的作答记录
// @Description 按创建时间倒序返回当前用户的尝试记录
// @Tags 尝试
// @Produce json
// @Security ApiKeyAuth
// @Param quizId query string false "测验ID"
// @Param lessonId query string false "课时ID"
// @Param limit query int false "条数限制 (默认50)" default(50)
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	filter := repository.AttemptFilter{
		QuizID:   ctx.Query("quizId"),
		LessonID: ctx.Query("lessonId"),
		Limit:    util.ParseLimit(ctx.Query("limit"), 50, 200),
	}

	attempts, err := c.AttemptService.ListAttempts(user.UserID, filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
