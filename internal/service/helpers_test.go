package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"
	"os"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeAttemptRepo 内存版尝试流水
type fakeAttemptRepo struct {
	attempts  []model.Attempt
	createErr error
	listErr   error
}

func (f *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	if f.createErr != nil {
		return f.createErr
	}
	if attempt.ID == "" {
		attempt.ID = model.GenerateUUID()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) ListByUser(userID string, filter repository.AttemptFilter) ([]model.Attempt, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.UserID != userID {
			continue
		}
		if filter.QuizID != "" && (a.SubjectID != filter.QuizID || a.SubjectType != model.SubjectQuiz) {
			continue
		}
		if filter.LessonID != "" && (a.LessonID == nil || *a.LessonID != filter.LessonID) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttemptRepo) ListBySubject(subjectID string) ([]model.Attempt, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.SubjectID == subjectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) ListQuizAttempts(userID, quizID string) ([]model.Attempt, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.SubjectType != model.SubjectQuiz {
			continue
		}
		if userID != "" && a.UserID != userID {
			continue
		}
		if quizID != "" && a.SubjectID != quizID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttemptRepo) CountByLesson(lessonID string, subjectType model.SubjectType) (int64, error) {
	var count int64
	for _, a := range f.attempts {
		if a.SubjectType == subjectType && a.LessonID != nil && *a.LessonID == lessonID {
			count++
		}
	}
	return count, nil
}

// fakeTrackingRepo 内存版课时跟踪存储
type fakeTrackingRepo struct {
	trackings []*model.LessonTracking
	createErr error
	updateErr error
}

func (f *fakeTrackingRepo) Create(tracking *model.LessonTracking) error {
	if f.createErr != nil {
		return f.createErr
	}
	if tracking.ID == "" {
		tracking.ID = model.GenerateUUID()
	}
	copied := *tracking
	f.trackings = append(f.trackings, &copied)
	return nil
}

func (f *fakeTrackingRepo) Update(tracking *model.LessonTracking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, t := range f.trackings {
		if t.ID == tracking.ID {
			copied := *tracking
			f.trackings[i] = &copied
			return nil
		}
	}
	return errors.New("tracking not found")
}

func (f *fakeTrackingRepo) FindLatestOpen(userID, lessonID string) (*model.LessonTracking, error) {
	var latest *model.LessonTracking
	for _, t := range f.trackings {
		if t.UserID != userID || t.LessonID != lessonID || t.Completed {
			continue
		}
		if latest == nil || t.StartTime.After(latest.StartTime) {
			latest = t
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeTrackingRepo) ListByLesson(lessonID string) ([]model.LessonTracking, error) {
	var out []model.LessonTracking
	for _, t := range f.trackings {
		if t.LessonID == lessonID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	existing map[string]bool
}

func (f *fakeQuizRepo) FindByID(id string) (*model.Quiz, error) {
	if !f.existing[id] {
		return nil, errors.New("record not found")
	}
	return &model.Quiz{UUIDBase: model.UUIDBase{ID: id}}, nil
}

func (f *fakeQuizRepo) Exists(id string) (bool, error) {
	return f.existing[id], nil
}

type fakeExerciseRepo struct {
	existing map[string]bool
}

func (f *fakeExerciseRepo) Exists(id string) (bool, error) {
	return f.existing[id], nil
}

type fakeLessonRepo struct {
	existing map[string]bool
}

func (f *fakeLessonRepo) Exists(id string) (bool, error) {
	return f.existing[id], nil
}

type fakeStatRepo struct {
	upserts []model.LessonStatistic
	stored  *model.LessonStatistic
}

func (f *fakeStatRepo) Upsert(stat *model.LessonStatistic) error {
	f.upserts = append(f.upserts, *stat)
	copied := *stat
	f.stored = &copied
	return nil
}

func (f *fakeStatRepo) FindByLesson(lessonID string) (*model.LessonStatistic, error) {
	if f.stored == nil || f.stored.LessonID != lessonID {
		return nil, nil
	}
	copied := *f.stored
	return &copied, nil
}

// fakeNotifier 记录 exercise_complete 回调并可注入失败
type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) RecordExerciseComplete(lessonID string) error {
	f.calls = append(f.calls, lessonID)
	return f.err
}

// fakeRecomputer 记录聚合重算触发并可注入失败
type fakeRecomputer struct {
	calls []string
	err   error
}

func (f *fakeRecomputer) RecomputeLessonStatistics(lessonID string) error {
	f.calls = append(f.calls, lessonID)
	return f.err
}

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string    { return &v }
