package model

// Formation 课程（培训），课时的上级容器
// swagger:model Formation
type Formation struct {
	UUIDBase

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Published   bool   `gorm:"default:false" json:"published"`
}

func (Formation) TableName() string {
	return "formations"
}
