package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"time"
)

// LessonStatsService 从跟踪流水重算课时参与度聚合，按课时覆写结果。
// 它是尝试/事件写入路径上的尽力而为协作方：失败由调用方记日志后继续。
type LessonStatsService struct {
	TrackingRepo TrackingRepository
	AttemptRepo  AttemptRepository
	StatRepo     LessonStatisticRepository
	LessonRepo   LessonRepository
}

func NewLessonStatsService(
	trackingRepo TrackingRepository,
	attemptRepo AttemptRepository,
	statRepo LessonStatisticRepository,
	lessonRepo LessonRepository,
) *LessonStatsService {
	return &LessonStatsService{
		TrackingRepo: trackingRepo,
		AttemptRepo:  attemptRepo,
		StatRepo:     statRepo,
		LessonRepo:   lessonRepo,
	}
}

// RecomputeLessonStatistics 全量重算一个课时的参与度指标
func (s *LessonStatsService) RecomputeLessonStatistics(lessonID string) error {
	trackings, err := s.TrackingRepo.ListByLesson(lessonID)
	if err != nil {
		return err
	}

	exerciseCount, err := s.AttemptRepo.CountByLesson(lessonID, model.SubjectExercise)
	if err != nil {
		return err
	}

	stat := ComputeLessonStatistic(lessonID, trackings)
	stat.ExerciseAttemptCount = int(exerciseCount)
	stat.ComputedAt = time.Now()

	return s.StatRepo.Upsert(stat)
}

// RecordExerciseComplete 练习完成事件，等价于触发一次全量重算
func (s *LessonStatsService) RecordExerciseComplete(lessonID string) error {
	return s.RecomputeLessonStatistics(lessonID)
}

// GetLessonStatistics 读取课时聚合；还没有落库时先算一次再返回
func (s *LessonStatsService) GetLessonStatistics(lessonID string) (*model.LessonStatistic, error) {
	if lessonID == "" {
		return nil, util.NewValidationError("lessonId", "is required")
	}

	exists, err := s.LessonRepo.Exists(lessonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrLessonNotFound
	}

	stat, err := s.StatRepo.FindByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if stat != nil {
		return stat, nil
	}

	if err := s.RecomputeLessonStatistics(lessonID); err != nil {
		return nil, err
	}
	return s.StatRepo.FindByLesson(lessonID)
}

// ComputeLessonStatistic 纯函数：由跟踪记录聚合课时参与度
func ComputeLessonStatistic(lessonID string, trackings []model.LessonTracking) *model.LessonStatistic {
	stat := &model.LessonStatistic{
		LessonID:  lessonID,
		ViewCount: len(trackings),
	}

	if len(trackings) == 0 {
		return stat
	}

	var progressSum int
	for _, t := range trackings {
		if t.Completed {
			stat.CompletionCount++
		}
		progressSum += t.ProgressPercentage
		stat.TotalTimeSeconds += t.TotalTimeSeconds
	}
	stat.AverageProgress = float64(progressSum) / float64(len(trackings))

	return stat
}
