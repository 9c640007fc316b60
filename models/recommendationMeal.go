package models

// 三餐各自一張表，同一筆推薦同一餐內 food 不重複
type RecommendationBreakfast struct {
	ID               int64   `gorm:"column:id;primary_key" json:"id"`
	RecommendationID int64   `gorm:"column:recommendation_id;unique_index:idx_breakfast_recommendation_food" json:"recommendation_id"`
	FoodID           int64   `gorm:"column:food_id;unique_index:idx_breakfast_recommendation_food" json:"food_id"`
	Position         int     `gorm:"column:position" json:"position"`
	Portion          float64 `gorm:"column:portion" json:"portion"`
}

// TableName sets the insert table name for this struct type
func (r *RecommendationBreakfast) TableName() string {
	return "recommendation_breakfasts"
}

type RecommendationLunch struct {
	ID               int64   `gorm:"column:id;primary_key" json:"id"`
	RecommendationID int64   `gorm:"column:recommendation_id;unique_index:idx_lunch_recommendation_food" json:"recommendation_id"`
	FoodID           int64   `gorm:"column:food_id;unique_index:idx_lunch_recommendation_food" json:"food_id"`
	Position         int     `gorm:"column:position" json:"position"`
	Portion          float64 `gorm:"column:portion" json:"portion"`
}

// TableName sets the insert table name for this struct type
func (r *RecommendationLunch) TableName() string {
	return "recommendation_lunches"
}

type RecommendationDinner struct {
	ID               int64   `gorm:"column:id;primary_key" json:"id"`
	RecommendationID int64   `gorm:"column:recommendation_id;unique_index:idx_dinner_recommendation_food" json:"recommendation_id"`
	FoodID           int64   `gorm:"column:food_id;unique_index:idx_dinner_recommendation_food" json:"food_id"`
	Position         int     `gorm:"column:position" json:"position"`
	Portion          float64 `gorm:"column:portion" json:"portion"`
}

// TableName sets the insert table name for this struct type
func (r *RecommendationDinner) TableName() string {
	return "recommendation_dinners"
}
