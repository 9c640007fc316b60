package models

import (
	"encoding/json"
	"time"
)

type Recommendation struct {
	ID               int64      `gorm:"column:id;primary_key" json:"id"`
	ChildID          int64      `gorm:"column:child_id;index" json:"child_id"`
	Date             time.Time  `gorm:"column:date;type:date" json:"date"`
	Motive           string     `gorm:"column:motive" json:"motive"`
	Provenance       string     `gorm:"column:provenance;type:text" json:"provenance"`
	Status           string     `gorm:"column:status;default:'current'" json:"status"`
	TotalCalories    float64    `gorm:"column:total_calories" json:"total_calories"`
	TotalProtein     float64    `gorm:"column:total_protein" json:"total_protein"`
	AvoidedAllergens string     `gorm:"column:avoided_allergens;type:text" json:"avoided_allergens"`
	Notes            string     `gorm:"column:notes;type:text" json:"notes"`
	BatchID          string     `gorm:"column:batch_id" json:"batch_id"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (r *Recommendation) TableName() string {
	return "recommendations"
}

// SetAvoidedAllergens 以 JSON 陣列存入
func (r *Recommendation) SetAvoidedAllergens(allergens []string) {
	if allergens == nil {
		allergens = []string{}
	}
	data, _ := json.Marshal(allergens)
	r.AvoidedAllergens = string(data)
}

func (r *Recommendation) AvoidedAllergenList() []string {
	var allergens []string
	if r.AvoidedAllergens == "" {
		return allergens
	}
	_ = json.Unmarshal([]byte(r.AvoidedAllergens), &allergens)
	return allergens
}
