package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

// 服务层依赖的存储契约。internal/repository 中的具体类型实现这些接口，
// 核心算法因此可以脱离数据库单独测试。

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	ListByUser(userID string, filter repository.AttemptFilter) ([]model.Attempt, error)
	ListBySubject(subjectID string) ([]model.Attempt, error)
	ListQuizAttempts(userID, quizID string) ([]model.Attempt, error)
	CountByLesson(lessonID string, subjectType model.SubjectType) (int64, error)
}

type TrackingRepository interface {
	Create(tracking *model.LessonTracking) error
	Update(tracking *model.LessonTracking) error
	FindLatestOpen(userID, lessonID string) (*model.LessonTracking, error)
	ListByLesson(lessonID string) ([]model.LessonTracking, error)
}

type QuizRepository interface {
	FindByID(id string) (*model.Quiz, error)
	Exists(id string) (bool, error)
}

type ExerciseRepository interface {
	Exists(id string) (bool, error)
}

type LessonRepository interface {
	Exists(id string) (bool, error)
}

type LessonStatisticRepository interface {
	Upsert(stat *model.LessonStatistic) error
	FindByLesson(lessonID string) (*model.LessonStatistic, error)
}
