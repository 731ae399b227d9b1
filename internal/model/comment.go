package model

// Comment 工作坊讨论区留言
// swagger:model Comment
type Comment struct {
	BaseModel
	WorkshopID uint   `gorm:"index;type:bigint unsigned;not null" json:"workshopId"`
	UserID     uint   `gorm:"type:bigint unsigned;not null" json:"userId"`
	UserName   string `gorm:"size:100" json:"userName"`
	Message    string `gorm:"size:1000;not null" json:"message"`
}

func (Comment) TableName() string {
	return "comments"
}
