package service

import (
	"errors"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingService(lessons map[string]bool, recomputer LessonStatsRecomputer) (*TrackingService, *fakeTrackingRepo) {
	repo := &fakeTrackingRepo{}
	svc := NewTrackingService(repo, &fakeLessonRepo{existing: lessons}, recomputer)
	return svc, repo
}

func TestRecordLessonEventValidation(t *testing.T) {
	svc, _ := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("", "lesson-1", LessonEventRequest{Action: ActionView})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.RecordLessonEvent("user-1", "", LessonEventRequest{Action: ActionView})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, Progress: intPtr(101)})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, Progress: intPtr(-1)})
	assert.True(t, util.IsValidationError(err))
}

func TestRecordLessonEventUnknownAction(t *testing.T) {
	svc, _ := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: "pause"})
	assert.True(t, util.IsInvalidActionError(err), "expected invalid action error, got %v", err)
}

func TestRecordLessonEventLessonNotFound(t *testing.T) {
	svc, _ := newTrackingService(map[string]bool{}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-missing", LessonEventRequest{Action: ActionView})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestViewAndStartAlwaysOpenNewRecord(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	id1, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionView})
	require.NoError(t, err)
	id2, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionStart})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, repo.trackings, 2)
	for _, tr := range repo.trackings {
		assert.False(t, tr.Completed)
		assert.Equal(t, 0, tr.ProgressPercentage)
	}
}

func TestProgressUpdatesLatestOpenRecord(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	id, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionStart})
	require.NoError(t, err)

	updatedID, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{
		Action:    ActionProgress,
		Progress:  intPtr(40),
		TimeSpent: intPtr(120),
		Position:  strPtr("chapter-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	require.Len(t, repo.trackings, 1)
	tr := repo.trackings[0]
	assert.Equal(t, 40, tr.ProgressPercentage)
	assert.Equal(t, 120, tr.TotalTimeSeconds)
	require.NotNil(t, tr.LastPosition)
	assert.Equal(t, "chapter-2", *tr.LastPosition)
}

func TestProgressAccumulatesTimeSpent(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionStart, TimeSpent: intPtr(30)})
	require.NoError(t, err)
	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, TimeSpent: intPtr(60)})
	require.NoError(t, err)
	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionComplete, TimeSpent: intPtr(10)})
	require.NoError(t, err)

	require.Len(t, repo.trackings, 1)
	assert.Equal(t, 100, repo.trackings[0].TotalTimeSeconds)
}

func TestProgressWithoutOpenRecordCreatesOne(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, Progress: intPtr(25)})
	require.NoError(t, err)

	require.Len(t, repo.trackings, 1)
	tr := repo.trackings[0]
	assert.False(t, tr.Completed)
	assert.Equal(t, 25, tr.ProgressPercentage)
}

func TestCompleteForcesFullProgress(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionStart})
	require.NoError(t, err)
	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, Progress: intPtr(50)})
	require.NoError(t, err)
	// 请求里的进度值被忽略，完成即 100
	_, err = svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionComplete, Progress: intPtr(70)})
	require.NoError(t, err)

	require.Len(t, repo.trackings, 1)
	tr := repo.trackings[0]
	assert.True(t, tr.Completed)
	assert.Equal(t, 100, tr.ProgressPercentage)
	assert.NotNil(t, tr.EndTime)
}

func TestCompleteWithoutOpenRecordCreatesCompleted(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionComplete, TimeSpent: intPtr(300)})
	require.NoError(t, err)

	require.Len(t, repo.trackings, 1)
	tr := repo.trackings[0]
	assert.True(t, tr.Completed)
	assert.Equal(t, 100, tr.ProgressPercentage)
	assert.Equal(t, 300, tr.TotalTimeSeconds)
	assert.NotNil(t, tr.EndTime)
}

func TestCompletedRecordIsNeverReopened(t *testing.T) {
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, nil)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionStart})
	require.NoError(t, err)
	completedID, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionComplete})
	require.NoError(t, err)

	// 已完成后再来 progress，应当新建记录而非改写旧记录
	newID, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionProgress, Progress: intPtr(10)})
	require.NoError(t, err)
	assert.NotEqual(t, completedID, newID)

	require.Len(t, repo.trackings, 2)
	for _, tr := range repo.trackings {
		if tr.ID == completedID {
			assert.True(t, tr.Completed)
			assert.Equal(t, 100, tr.ProgressPercentage)
		} else {
			assert.False(t, tr.Completed)
			assert.Equal(t, 10, tr.ProgressPercentage)
		}
	}
}

func TestRecordLessonEventTriggersRecompute(t *testing.T) {
	recomputer := &fakeRecomputer{}
	svc, _ := newTrackingService(map[string]bool{"lesson-1": true}, recomputer)

	_, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionView})
	require.NoError(t, err)
	assert.Equal(t, []string{"lesson-1"}, recomputer.calls)
}

func TestRecomputeFailureDoesNotFailEvent(t *testing.T) {
	recomputer := &fakeRecomputer{err: errors.New("stats store down")}
	svc, repo := newTrackingService(map[string]bool{"lesson-1": true}, recomputer)

	id, err := svc.RecordLessonEvent("user-1", "lesson-1", LessonEventRequest{Action: ActionView})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, repo.trackings, 1)
}
