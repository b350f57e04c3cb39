package repository

import (
	"learnhub_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func seedAttempt(t *testing.T, repo *AttemptRepository, userID, subjectID string, subjectType model.SubjectType, lessonID *string, createdAt time.Time) *model.Attempt {
	t.Helper()

	attempt := &model.Attempt{
		UUIDBase:    model.UUIDBase{CreatedAt: createdAt},
		SubjectID:   subjectID,
		SubjectType: subjectType,
		UserID:      userID,
		LessonID:    lessonID,
		Score:       8,
		MaxScore:    10,
		Answers:     datatypes.JSON(`{"q1":"a"}`),
	}
	require.NoError(t, repo.Create(attempt))
	return attempt
}

func TestAttemptRepositoryCreateAndFind(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	created := seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, time.Now())
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "user-1", found.UserID)
	assert.Equal(t, model.SubjectQuiz, found.SubjectType)
}

func TestAttemptRepositoryListByUserOrderedNewestFirst(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	first := seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, base)
	second := seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, base.Add(time.Hour))
	seedAttempt(t, repo, "user-2", "quiz-1", model.SubjectQuiz, nil, base)

	attempts, err := repo.ListByUser("user-1", AttemptFilter{})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, second.ID, attempts[0].ID)
	assert.Equal(t, first.ID, attempts[1].ID)
}

func TestAttemptRepositoryListByUserFilters(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	lessonID := "lesson-1"
	now := time.Now()
	seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, now)
	seedAttempt(t, repo, "user-1", "quiz-2", model.SubjectQuiz, nil, now)
	seedAttempt(t, repo, "user-1", "ex-1", model.SubjectExercise, &lessonID, now)

	byQuiz, err := repo.ListByUser("user-1", AttemptFilter{QuizID: "quiz-1"})
	require.NoError(t, err)
	require.Len(t, byQuiz, 1)
	assert.Equal(t, "quiz-1", byQuiz[0].SubjectID)

	byLesson, err := repo.ListByUser("user-1", AttemptFilter{LessonID: lessonID})
	require.NoError(t, err)
	require.Len(t, byLesson, 1)
	assert.Equal(t, model.SubjectExercise, byLesson[0].SubjectType)
}

func TestAttemptRepositoryListByUserLimit(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, base.Add(time.Duration(i)*time.Minute))
	}

	attempts, err := repo.ListByUser("user-1", AttemptFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, attempts, 3)
	// 截断后保留最新的三条
	assert.True(t, attempts[0].CreatedAt.After(attempts[2].CreatedAt))
}

func TestAttemptRepositoryListBySubject(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	older := seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, base)
	newer := seedAttempt(t, repo, "user-2", "quiz-1", model.SubjectQuiz, nil, base.Add(time.Hour))
	seedAttempt(t, repo, "user-1", "quiz-2", model.SubjectQuiz, nil, base)

	attempts, err := repo.ListBySubject("quiz-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, older.ID, attempts[0].ID)
	assert.Equal(t, newer.ID, attempts[1].ID)
}

func TestAttemptRepositoryListQuizAttempts(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	lessonID := "lesson-1"
	now := time.Now()
	seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, nil, now)
	seedAttempt(t, repo, "user-2", "quiz-1", model.SubjectQuiz, nil, now)
	seedAttempt(t, repo, "user-1", "quiz-2", model.SubjectQuiz, nil, now)
	seedAttempt(t, repo, "user-1", "ex-1", model.SubjectExercise, &lessonID, now)

	all, err := repo.ListQuizAttempts("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := repo.ListQuizAttempts("user-1", "")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byBoth, err := repo.ListQuizAttempts("user-1", "quiz-1")
	require.NoError(t, err)
	assert.Len(t, byBoth, 1)
}

func TestAttemptRepositoryCountByLesson(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	lessonID := "lesson-1"
	otherLesson := "lesson-2"
	now := time.Now()
	seedAttempt(t, repo, "user-1", "ex-1", model.SubjectExercise, &lessonID, now)
	seedAttempt(t, repo, "user-2", "ex-1", model.SubjectExercise, &lessonID, now)
	seedAttempt(t, repo, "user-1", "ex-2", model.SubjectExercise, &otherLesson, now)
	seedAttempt(t, repo, "user-1", "quiz-1", model.SubjectQuiz, &lessonID, now)

	count, err := repo.CountByLesson(lessonID, model.SubjectExercise)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
