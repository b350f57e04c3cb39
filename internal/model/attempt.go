package model

import (
	"gorm.io/datatypes"
)

type SubjectType string

const (
	SubjectQuiz     SubjectType = "quiz"
	SubjectExercise SubjectType = "exercise"
)

// Attempt 一次测验或练习的作答记录。创建后不可变，属于只追加的流水，
// 统计与排行榜均从这张流水派生。
// swagger:model Attempt
type Attempt struct {
	UUIDBase

	SubjectID   string         `gorm:"index;type:uuid;not null" json:"subjectId"`
	SubjectType SubjectType    `gorm:"index;size:16;not null" json:"subjectType"`
	UserID      string         `gorm:"index;type:uuid;not null" json:"userId"`
	LessonID    *string        `gorm:"index;type:uuid" json:"lessonId,omitempty"`
	Score       float64        `gorm:"not null" json:"score"`
	MaxScore    float64        `gorm:"not null" json:"maxScore"`
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	// TotalQuestions/CorrectCount 针对测验；练习固定为 0
	TotalQuestions int  `gorm:"default:0" json:"totalQuestions"`
	CorrectCount   int  `gorm:"default:0" json:"correctCount"`
	TimeSpent      *int `json:"timeSpent,omitempty"` // 秒
}

func (Attempt) TableName() string {
	return "attempts"
}

// ScorePercentage 得分率（0-100）
func (a *Attempt) ScorePercentage() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.Score / a.MaxScore * 100
}
