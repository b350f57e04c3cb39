package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"sort"
)

type LeaderboardService struct {
	AttemptRepo AttemptRepository
	QuizRepo    QuizRepository
}

func NewLeaderboardService(attemptRepo AttemptRepository, quizRepo QuizRepository) *LeaderboardService {
	return &LeaderboardService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
	}
}

// GetLeaderboard 基于尝试流水现算测验排行榜。没有尝试时返回空榜单。
func (s *LeaderboardService) GetLeaderboard(quizID string) ([]model.LeaderboardEntry, error) {
	if quizID == "" {
		return nil, util.NewValidationError("quizId", "is required")
	}

	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	attempts, err := s.AttemptRepo.ListBySubject(quizID)
	if err != nil {
		return nil, err
	}

	return BuildLeaderboard(attempts), nil
}

// BuildLeaderboard 纯函数：把一个测验的尝试流水归并成排行榜。
//
// 每个用户取最好成绩行，排序键依次为：
//  1. 最高得分率 降序
//  2. 最快用时 升序（无用时排最后）
//  3. 尝试次数 升序
//  4. 最后一次尝试时间 升序
//
// 名次按排序后的行序连续分配（1..N），四键全同也不共享名次。
func BuildLeaderboard(attempts []model.Attempt) []model.LeaderboardEntry {
	byUser := make(map[string]*model.LeaderboardEntry)

	for _, a := range attempts {
		pct := a.ScorePercentage()

		entry, ok := byUser[a.UserID]
		if !ok {
			byUser[a.UserID] = &model.LeaderboardEntry{
				UserID:              a.UserID,
				BestScore:           a.Score,
				BestScorePercentage: pct,
				AttemptCount:        1,
				BestTimeSpent:       copyInt(a.TimeSpent),
				LastAttemptDate:     a.CreatedAt,
			}
			continue
		}

		entry.AttemptCount++
		if a.Score > entry.BestScore {
			entry.BestScore = a.Score
		}
		if pct > entry.BestScorePercentage {
			entry.BestScorePercentage = pct
		}
		if a.TimeSpent != nil && (entry.BestTimeSpent == nil || *a.TimeSpent < *entry.BestTimeSpent) {
			entry.BestTimeSpent = copyInt(a.TimeSpent)
		}
		if a.CreatedAt.After(entry.LastAttemptDate) {
			entry.LastAttemptDate = a.CreatedAt
		}
	}

	entries := make([]model.LeaderboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.BestScorePercentage != b.BestScorePercentage {
			return a.BestScorePercentage > b.BestScorePercentage
		}

		// 无用时的行排在有用时的行之后
		switch {
		case a.BestTimeSpent != nil && b.BestTimeSpent == nil:
			return true
		case a.BestTimeSpent == nil && b.BestTimeSpent != nil:
			return false
		case a.BestTimeSpent != nil && b.BestTimeSpent != nil && *a.BestTimeSpent != *b.BestTimeSpent:
			return *a.BestTimeSpent < *b.BestTimeSpent
		}

		if a.AttemptCount != b.AttemptCount {
			return a.AttemptCount < b.AttemptCount
		}
		if !a.LastAttemptDate.Equal(b.LastAttemptDate) {
			return a.LastAttemptDate.Before(b.LastAttemptDate)
		}

		// 四个排序键全部相同时按用户ID稳定输出
		return a.UserID < b.UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
