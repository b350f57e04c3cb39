package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type TrackingController struct {
	TrackingService *service.TrackingService
}

func NewTrackingController(trackingService *service.TrackingService) *TrackingController {
	return &TrackingController{TrackingService: trackingService}
}

// @Summary 上报课时学习事件
// @Description 动作限 view/start/progress/complete；view/start 开启新会话，progress/complete 更新最近未完成会话
// @Tags 课时进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path string true "课时ID"
// @Param body body service.LessonEventRequest true "课时事件"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/events [post]
func (c *TrackingController) RecordLessonEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := ctx.Param("lessonId")

	var req service.LessonEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trackingID, err := c.TrackingService.RecordLessonEvent(user.UserID, lessonID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	monitoring.LessonEventCounter.WithLabelValues(req.Action).Inc()
	util.Success(ctx, gin.H{"trackingId": trackingID})
}
