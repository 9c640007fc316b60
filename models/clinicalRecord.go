package models

import "time"

// ClinicalRecord 只有 active 且最新更新的一筆會被採用
type ClinicalRecord struct {
	ID            int64      `gorm:"column:id;primary_key" json:"id"`
	ChildID       int64      `gorm:"column:child_id;index" json:"child_id"`
	WeightKg      float64    `gorm:"column:weight_kg" json:"weight_kg"`
	HeightM       float64    `gorm:"column:height_m" json:"height_m"`
	ActivityLevel string     `gorm:"column:activity_level" json:"activity_level"`
	Conditions    string     `gorm:"column:conditions" json:"conditions"`
	Allergies     string     `gorm:"column:allergies" json:"allergies"`
	Malnutrition  bool       `gorm:"column:malnutrition" json:"malnutrition"`
	Diabetes      bool       `gorm:"column:diabetes" json:"diabetes"`
	Active        bool       `gorm:"column:active" json:"active"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (c *ClinicalRecord) TableName() string {
	return "clinical_records"
}
