package model

// swagger:model Quiz
type Quiz struct {
	UUIDBase

	LessonID      *string `gorm:"index;type:uuid" json:"lessonId,omitempty"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	QuestionCount int     `gorm:"default:0" json:"questionCount"`
	Published     bool    `gorm:"default:false" json:"published"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Exercise 课时内的练习题，与测验共用尝试记录流水
// swagger:model Exercise
type Exercise struct {
	UUIDBase

	LessonID *string `gorm:"index;type:uuid" json:"lessonId,omitempty"`
	Title    string  `gorm:"size:255;not null" json:"title"`
}

func (Exercise) TableName() string {
	return "exercises"
}
