package model

import "time"

// Certificate 工作坊结业证书，每个 (workshop, student) 最多一张
// swagger:model Certificate
type Certificate struct {
	BaseModel
	SerialNumber   string    `gorm:"size:36;unique;not null" json:"serialNumber"`
	WorkshopID     uint      `gorm:"index:idx_workshop_cert,unique;type:bigint unsigned;not null" json:"workshopId"`
	StudentID      uint      `gorm:"index:idx_workshop_cert,unique;type:bigint unsigned;not null" json:"studentId"`
	WorkshopTitle  string    `gorm:"size:200" json:"workshopTitle"`
	StudentName    string    `gorm:"size:100" json:"studentName"`
	InstructorID   uint      `gorm:"type:bigint unsigned" json:"instructorId"`
	InstructorName string    `gorm:"size:100" json:"instructorName"`
	IssuedAt       time.Time `gorm:"not null;index" json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
