package models

import "strings"

type Food struct {
	ID           int64   `gorm:"column:id;primary_key" json:"id"`
	Name         string  `gorm:"column:name" json:"name"`
	Category     string  `gorm:"column:category;index" json:"category"`
	Calories     float64 `gorm:"column:calories" json:"calories"`
	Protein      float64 `gorm:"column:protein" json:"protein"`
	Fat          float64 `gorm:"column:fat" json:"fat"`
	Carbohydrate float64 `gorm:"column:carbohydrate" json:"carbohydrate"`
	FoodGroup    string  `gorm:"column:food_group" json:"food_group"`
	Allergens    string  `gorm:"column:allergens" json:"allergens"`
}

// TableName sets the insert table name for this struct type
func (f *Food) TableName() string {
	return "foods"
}

// AllergenTags 以逗號分隔的過敏原欄位拆成 tag
func (f *Food) AllergenTags() []string {
	var tags []string
	for _, tag := range strings.Split(f.Allergens, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
