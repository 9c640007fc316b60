package models

import "time"

// ActivityLog 稽核紀錄: 誰(actor/role) 對哪個模組做了什麼
type ActivityLog struct {
	ID          int64      `gorm:"column:id;primary_key" json:"id"`
	ActorID     int64      `gorm:"column:actor_id" json:"actor_id"`
	Role        string     `gorm:"column:role" json:"role"`
	Action      string     `gorm:"column:action" json:"action"`
	Module      string     `gorm:"column:module" json:"module"`
	SubjectID   int64      `gorm:"column:subject_id" json:"subject_id"`
	LogName     string     `gorm:"column:log_name" json:"log_name"`
	Description string     `gorm:"column:description" json:"description"`
	Properties  string     `gorm:"column:properties;type:text" json:"properties"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (a *ActivityLog) TableName() string {
	return "activity_log"
}
