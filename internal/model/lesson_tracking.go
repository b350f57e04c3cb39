package model

import "time"

// LessonTracking 单次课时学习会话。同一 (user, lesson) 同时只有一条
// "最近的未完成记录"参与更新；完成后的记录不再复用，
// 下一次 view/start 会开启新记录。
// swagger:model LessonTracking
type LessonTracking struct {
	UUIDBase

	UserID             string     `gorm:"index:idx_tracking_user_lesson;type:uuid;not null" json:"userId"`
	LessonID           string     `gorm:"index:idx_tracking_user_lesson;type:uuid;not null" json:"lessonId"`
	StartTime          time.Time  `gorm:"not null" json:"startTime"`
	EndTime            *time.Time `json:"endTime,omitempty"`
	TotalTimeSeconds   int        `gorm:"default:0" json:"totalTimeSeconds"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	Completed          bool       `gorm:"default:false" json:"completed"`
	LastPosition       *string    `gorm:"size:255" json:"lastPosition,omitempty"`
}

func (LessonTracking) TableName() string {
	return "lesson_trackings"
}
