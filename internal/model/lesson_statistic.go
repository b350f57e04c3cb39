package model

import "time"

// LessonStatistic 课时维度的参与度聚合，由跟踪流水重算后按课时覆写。
// 重算失败只记日志，不影响触发它的写入操作。
// swagger:model LessonStatistic
type LessonStatistic struct {
	UUIDBase

	LessonID             string    `gorm:"uniqueIndex;type:uuid;not null" json:"lessonId"`
	ViewCount            int       `gorm:"default:0" json:"viewCount"`
	CompletionCount      int       `gorm:"default:0" json:"completionCount"`
	AverageProgress      float64   `gorm:"default:0" json:"averageProgress"`
	TotalTimeSeconds     int       `gorm:"default:0" json:"totalTimeSeconds"`
	ExerciseAttemptCount int       `gorm:"default:0" json:"exerciseAttemptCount"`
	ComputedAt           time.Time `json:"computedAt"`
}

func (LessonStatistic) TableName() string {
	return "lesson_statistics"
}
