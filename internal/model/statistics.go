package model

import "time"

// 以下为读侧派生类型，每次请求基于尝试流水现算，不落库也不缓存。

// QuizStatistic 测验维度聚合。零尝试时 AttemptCount 为 0，均值类字段为 null。
// swagger:model QuizStatistic
type QuizStatistic struct {
	QuizID                 string   `json:"quizId"`
	AttemptCount           int      `json:"attemptCount"`
	AverageScorePercentage *float64 `json:"averageScorePercentage"`
	MinScorePercentage     *float64 `json:"minScorePercentage"`
	MaxScorePercentage     *float64 `json:"maxScorePercentage"`
	AverageTimeSpent       *float64 `json:"averageTimeSpent"`
}

// UserQuizStatistic (用户, 测验) 维度聚合
// swagger:model UserQuizStatistic
type UserQuizStatistic struct {
	UserID                 string    `json:"userId"`
	QuizID                 string    `json:"quizId"`
	AttemptCount           int       `json:"attemptCount"`
	BestScorePercentage    float64   `json:"bestScorePercentage"`
	AverageScorePercentage float64   `json:"averageScorePercentage"`
	FirstAttemptDate       time.Time `json:"firstAttemptDate"`
	LastAttemptDate        time.Time `json:"lastAttemptDate"`
}

// LeaderboardEntry 测验排行榜中某个用户的最好成绩行。
// Rank 为按排序顺序连续分配的名次，四个排序键全部相同也不共享名次。
// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	Rank                int       `json:"rank"`
	UserID              string    `json:"userId"`
	BestScore           float64   `json:"bestScore"`
	BestScorePercentage float64   `json:"bestScorePercentage"`
	AttemptCount        int       `json:"attemptCount"`
	BestTimeSpent       *int      `json:"bestTimeSpent"`
	LastAttemptDate     time.Time `json:"lastAttemptDate"`
}
