package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"sort"
)

type StatisticsService struct {
	AttemptRepo AttemptRepository
	QuizRepo    QuizRepository
}

func NewStatisticsService(attemptRepo AttemptRepository, quizRepo QuizRepository) *StatisticsService {
	return &StatisticsService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
	}
}

// GetQuizStatistics 基于尝试流水现算测验聚合，不缓存
func (s *StatisticsService) GetQuizStatistics(quizID string) (*model.QuizStatistic, error) {
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

	return ComputeQuizStatistics(quizID, attempts), nil
}

// GetUserQuizStatistics 按 (用户, 测验) 分组聚合。两个过滤条件均可为空。
func (s *StatisticsService) GetUserQuizStatistics(userID, quizID string) ([]model.UserQuizStatistic, error) {
	attempts, err := s.AttemptRepo.ListQuizAttempts(userID, quizID)
	if err != nil {
		return nil, err
	}
	return ComputeUserQuizStatistics(attempts), nil
}

// ComputeQuizStatistics 纯函数：对一个测验的全部尝试做聚合。
// 零尝试时计数为 0，均值字段保持 nil，不产生除零。
func ComputeQuizStatistics(quizID string, attempts []model.Attempt) *model.QuizStatistic {
	stat := &model.QuizStatistic{
		QuizID:       quizID,
		AttemptCount: len(attempts),
	}
	if len(attempts) == 0 {
		return stat
	}

	var sumPct, minPct, maxPct float64
	var timeSum, timeCount int

	for i, a := range attempts {
		pct := a.ScorePercentage()
		sumPct += pct
		if i == 0 || pct < minPct {
			minPct = pct
		}
		if i == 0 || pct > maxPct {
			maxPct = pct
		}
		if a.TimeSpent != nil {
			timeSum += *a.TimeSpent
			timeCount++
		}
	}

	avgPct := sumPct / float64(len(attempts))
	stat.AverageScorePercentage = &avgPct
	stat.MinScorePercentage = &minPct
	stat.MaxScorePercentage = &maxPct

	if timeCount > 0 {
		avgTime := float64(timeSum) / float64(timeCount)
		stat.AverageTimeSpent = &avgTime
	}

	return stat
}

// ComputeUserQuizStatistics 纯函数：按 (用户, 测验) 分组聚合尝试流水。
// 输出按用户ID、测验ID排序，保证结果稳定。
func ComputeUserQuizStatistics(attempts []model.Attempt) []model.UserQuizStatistic {
	type key struct {
		userID string
		quizID string
	}

	groups := make(map[key][]model.Attempt)
	for _, a := range attempts {
		k := key{userID: a.UserID, quizID: a.SubjectID}
		groups[k] = append(groups[k], a)
	}

	stats := make([]model.UserQuizStatistic, 0, len(groups))
	for k, group := range groups {
		stat := model.UserQuizStatistic{
			UserID:           k.userID,
			QuizID:           k.quizID,
			AttemptCount:     len(group),
			FirstAttemptDate: group[0].CreatedAt,
			LastAttemptDate:  group[0].CreatedAt,
		}

		var sumPct float64
		for _, a := range group {
			pct := a.ScorePercentage()
			sumPct += pct
			if pct > stat.BestScorePercentage {
				stat.BestScorePercentage = pct
			}
			if a.CreatedAt.Before(stat.FirstAttemptDate) {
				stat.FirstAttemptDate = a.CreatedAt
			}
			if a.CreatedAt.After(stat.LastAttemptDate) {
				stat.LastAttemptDate = a.CreatedAt
			}
		}
		stat.AverageScorePercentage = sumPct / float64(len(group))

		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].UserID != stats[j].UserID {
			return stats[i].UserID < stats[j].UserID
		}
		return stats[i].QuizID < stats[j].QuizID
	})

	return stats
}
