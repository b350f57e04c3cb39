package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase

	FormationID *string `gorm:"index;type:uuid" json:"formationId,omitempty"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Position    int     `gorm:"default:0" json:"position"`
	Published   bool    `gorm:"default:false" json:"published"`
}

func (Lesson) TableName() string {
	return "lessons"
}
