package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// 课时事件动作集合
const (
	ActionView     = "view"
	ActionStart    = "start"
	ActionProgress = "progress"
	ActionComplete = "complete"
)

// LessonStatsRecomputer 事件落库后触发的课时聚合重算，尽力而为
type LessonStatsRecomputer interface {
	RecomputeLessonStatistics(lessonID string) error
}

type TrackingService struct {
	TrackingRepo TrackingRepository
	LessonRepo   LessonRepository
	Recomputer   LessonStatsRecomputer
}

func NewTrackingService(trackingRepo TrackingRepository, lessonRepo LessonRepository, recomputer LessonStatsRecomputer) *TrackingService {
	return &TrackingService{
		TrackingRepo: trackingRepo,
		LessonRepo:   lessonRepo,
		Recomputer:   recomputer,
	}
}

// LessonEventRequest 课时学习事件
type LessonEventRequest struct {
	Action    string  `json:"action"`
	TimeSpent *int    `json:"timeSpent,omitempty"` // 秒，累加到 totalTimeSeconds
	Progress  *int    `json:"progress,omitempty"`  // 0-100
	Position  *string `json:"position,omitempty"`
}

// RecordLessonEvent 按状态机处理一次课时事件，返回被创建或更新的跟踪记录ID。
//
//	view/start: 总是新建一条未完成记录（重新进入视为新会话）
//	progress:   更新最近未完成记录；没有则退化为新建
//	complete:   完结最近未完成记录；没有则直接新建已完成记录
func (s *TrackingService) RecordLessonEvent(userID, lessonID string, req LessonEventRequest) (string, error) {
	if userID == "" {
		return "", util.NewValidationError("userId", "is required")
	}
	if lessonID == "" {
		return "", util.NewValidationError("lessonId", "is required")
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		return "", util.NewValidationError("progress", "must be between 0 and 100")
	}

	switch req.Action {
	case ActionView, ActionStart, ActionProgress, ActionComplete:
	default:
		return "", util.NewInvalidActionError(req.Action)
	}

	exists, err := s.LessonRepo.Exists(lessonID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", util.ErrLessonNotFound
	}

	var tracking *model.LessonTracking
	switch req.Action {
	case ActionView, ActionStart:
		tracking, err = s.openTracking(userID, lessonID, req, false)
	case ActionProgress:
		tracking, err = s.applyProgress(userID, lessonID, req)
	case ActionComplete:
		tracking, err = s.applyComplete(userID, lessonID, req)
	}
	if err != nil {
		return "", err
	}

	// 聚合重算失败不影响事件本身
	if s.Recomputer != nil {
		if err := s.Recomputer.RecomputeLessonStatistics(lessonID); err != nil {
			logger.Log.Warn("lesson statistics recompute failed",
				zap.String("lessonId", lessonID),
				zap.Error(err))
		}
	}

	return tracking.ID, nil
}

// openTracking 新建一条跟踪记录。completed 为 true 时直接建成已完成状态
// （complete 事件找不到未完成记录的场景）。
func (s *TrackingService) openTracking(userID, lessonID string, req LessonEventRequest, completed bool) (*model.LessonTracking, error) {
	now := time.Now()

	tracking := &model.LessonTracking{
		UserID:       userID,
		LessonID:     lessonID,
		StartTime:    now,
		LastPosition: req.Position,
	}
	if req.TimeSpent != nil {
		tracking.TotalTimeSeconds = *req.TimeSpent
	}

	if completed {
		tracking.Completed = true
		tracking.EndTime = &now
		tracking.ProgressPercentage = 100
	} else if req.Progress != nil && req.Action == ActionProgress {
		// progress 事件退化为新建时保留上报的进度
		tracking.ProgressPercentage = *req.Progress
	}

	if err := s.TrackingRepo.Create(tracking); err != nil {
		return nil, err
	}
	return tracking, nil
}

func (s *TrackingService) applyProgress(userID, lessonID string, req LessonEventRequest) (*model.LessonTracking, error) {
	tracking, err := s.TrackingRepo.FindLatestOpen(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return s.openTracking(userID, lessonID, req, false)
	}

	if req.Progress != nil {
		tracking.ProgressPercentage = *req.Progress
	}
	if req.TimeSpent != nil {
		tracking.TotalTimeSeconds += *req.TimeSpent
	}
	if req.Position != nil {
		tracking.LastPosition = req.Position
	}

	if err := s.TrackingRepo.Update(tracking); err != nil {
		return nil, err
	}
	return tracking, nil
}

func (s *TrackingService) applyComplete(userID, lessonID string, req LessonEventRequest) (*model.LessonTracking, error) {
	tracking, err := s.TrackingRepo.FindLatestOpen(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return s.openTracking(userID, lessonID, req, true)
	}

	now := time.Now()
	tracking.Completed = true
	tracking.EndTime = &now
	// 完成事件强制进度为 100，忽略请求里的 progress 值
	tracking.ProgressPercentage = 100
	if req.TimeSpent != nil {
		tracking.TotalTimeSeconds += *req.TimeSpent
	}
	if req.Position != nil {
		tracking.LastPosition = req.Position
	}

	if err := s.TrackingRepo.Update(tracking); err != nil {
		return nil, err
	}
	return tracking, nil
}
