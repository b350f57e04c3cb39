package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"math"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// LessonEngagementNotifier 练习完成后的课时参与度回调。
// 调用失败只记日志，不影响尝试记录本身的落库。
type LessonEngagementNotifier interface {
	RecordExerciseComplete(lessonID string) error
}

type AttemptService struct {
	AttemptRepo  AttemptRepository
	QuizRepo     QuizRepository
	ExerciseRepo ExerciseRepository
	LessonRepo   LessonRepository
	Notifier     LessonEngagementNotifier
}

func NewAttemptService(
	attemptRepo AttemptRepository,
	quizRepo QuizRepository,
	exerciseRepo ExerciseRepository,
	lessonRepo LessonRepository,
	notifier LessonEngagementNotifier,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:  attemptRepo,
		QuizRepo:     quizRepo,
		ExerciseRepo: exerciseRepo,
		LessonRepo:   lessonRepo,
		Notifier:     notifier,
	}
}

// QuizAttemptRequest 测验作答提交。指针字段用于区分"未传"和"零值"。
type QuizAttemptRequest struct {
	QuizID         string         `json:"quizId"`
	LessonID       *string        `json:"lessonId,omitempty"`
	Score          *float64       `json:"score"`
	MaxScore       *float64       `json:"maxScore"`
	Answers        datatypes.JSON `json:"answers"`
	TotalQuestions *int           `json:"totalQuestions"`
	CorrectCount   *int           `json:"correctCount,omitempty"`
	TimeSpent      *int           `json:"timeSpent,omitempty"`
}

// ExerciseAttemptRequest 练习作答提交
type ExerciseAttemptRequest struct {
	ExerciseID string         `json:"exerciseId"`
	LessonID   string         `json:"lessonId"`
	Score      *float64       `json:"score"`
	MaxScore   *float64       `json:"maxScore"`
	Answers    datatypes.JSON `json:"answers,omitempty"`
	TimeSpent  *int           `json:"timeSpent,omitempty"`
}

// RecordQuizAttempt 校验并追加一次测验尝试。
// 未提供 correctCount 时按得分率估算，见 DeriveCorrectCount。
func (s *AttemptService) RecordQuizAttempt(userID string, req QuizAttemptRequest) (*model.Attempt, error) {
	if userID == "" {
		return nil, util.NewValidationError("userId", "is required")
	}
	if req.QuizID == "" {
		return nil, util.NewValidationError("quizId", "is required")
	}
	if req.Score == nil {
		return nil, util.NewValidationError("score", "is required")
	}
	if req.MaxScore == nil {
		return nil, util.NewValidationError("maxScore", "is required")
	}
	if *req.MaxScore <= 0 {
		return nil, util.NewValidationError("maxScore", "must be greater than 0")
	}
	if len(req.Answers) == 0 {
		return nil, util.NewValidationError("answers", "is required")
	}
	if req.TotalQuestions == nil {
		return nil, util.NewValidationError("totalQuestions", "is required")
	}
	if *req.TotalQuestions < 0 {
		return nil, util.NewValidationError("totalQuestions", "must not be negative")
	}

	exists, err := s.QuizRepo.Exists(req.QuizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	if req.LessonID != nil {
		lessonExists, err := s.LessonRepo.Exists(*req.LessonID)
		if err != nil {
			return nil, err
		}
		if !lessonExists {
			return nil, util.ErrLessonNotFound
		}
	}

	correctCount := 0
	if req.CorrectCount != nil {
		if *req.CorrectCount < 0 || *req.CorrectCount > *req.TotalQuestions {
			return nil, util.NewValidationError("correctCount", "must be between 0 and totalQuestions")
		}
		correctCount = *req.CorrectCount
	} else {
		correctCount = DeriveCorrectCount(*req.Score, *req.MaxScore, *req.TotalQuestions)
	}

	attempt := &model.Attempt{
		SubjectID:      req.QuizID,
		SubjectType:    model.SubjectQuiz,
		UserID:         userID,
		LessonID:       req.LessonID,
		Score:          *req.Score,
		MaxScore:       *req.MaxScore,
		Answers:        req.Answers,
		TotalQuestions: *req.TotalQuestions,
		CorrectCount:   correctCount,
		TimeSpent:      req.TimeSpent,
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

// RecordExerciseAttempt 校验并追加一次练习尝试，随后尽力更新课时参与度
func (s *AttemptService) RecordExerciseAttempt(userID string, req ExerciseAttemptRequest) (*model.Attempt, error) {
	if userID == "" {
		return nil, util.NewValidationError("userId", "is required")
	}
	if req.ExerciseID == "" {
		return nil, util.NewValidationError("exerciseId", "is required")
	}
	if req.LessonID == "" {
		return nil, util.NewValidationError("lessonId", "is required")
	}
	if req.Score == nil {
		return nil, util.NewValidationError("score", "is required")
	}
	if req.MaxScore == nil {
		return nil, util.NewValidationError("maxScore", "is required")
	}
	if *req.MaxScore <= 0 {
		return nil, util.NewValidationError("maxScore", "must be greater than 0")
	}

	exists, err := s.ExerciseRepo.Exists(req.ExerciseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrExerciseNotFound
	}

	lessonExists, err := s.LessonRepo.Exists(req.LessonID)
	if err != nil {
		return nil, err
	}
	if !lessonExists {
		return nil, util.ErrLessonNotFound
	}

	lessonID := req.LessonID
	attempt := &model.Attempt{
		SubjectID:   req.ExerciseID,
		SubjectType: model.SubjectExercise,
		UserID:      userID,
		LessonID:    &lessonID,
		Score:       *req.Score,
		MaxScore:    *req.MaxScore,
		Answers:     req.Answers,
		TimeSpent:   req.TimeSpent,
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	// exercise_complete 事件：失败不回传
	if s.Notifier != nil {
		if err := s.Notifier.RecordExerciseComplete(lessonID); err != nil {
			logger.Log.Warn("lesson engagement update failed",
				zap.String("lessonId", lessonID),
				zap.Error(err))
		}
	}

	return attempt, nil
}

func (s *AttemptService) ListAttempts(userID string, filter repository.AttemptFilter) ([]model.Attempt, error) {
	if userID == "" {
		return nil, util.NewValidationError("userId", "is required")
	}
	return s.AttemptRepo.ListByUser(userID, filter)
}

// DeriveCorrectCount 按得分率估算答对题数：round((score/maxScore)*totalQuestions)，
// 再收敛到 [0, totalQuestions]。这是沿用线上行为的近似策略，
// 并非基于答案逐题判分。
func DeriveCorrectCount(score, maxScore float64, totalQuestions int) int {
	if maxScore <= 0 || totalQuestions <= 0 {
		return 0
	}
	count := int(math.Round(score / maxScore * float64(totalQuestions)))
	if count < 0 {
		return 0
	}
	if count > totalQuestions {
		return totalQuestions
	}
	return count
}
