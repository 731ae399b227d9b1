package model

// Department 院系/部门，管理层级的根节点
// swagger:model Department
type Department struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Code        string `gorm:"size:20;unique;not null" json:"code"`
	Description string `gorm:"size:500" json:"description"`
}

func (Department) TableName() string {
	return "departments"
}
