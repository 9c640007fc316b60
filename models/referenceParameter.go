package models

type ReferenceParameter struct {
	ID       int64   `gorm:"column:id;primary_key" json:"id"`
	AgeMin   int     `gorm:"column:age_min" json:"age_min"`
	AgeMax   int     `gorm:"column:age_max" json:"age_max"`
	Calories float64 `gorm:"column:calories" json:"calories"`
	Protein  float64 `gorm:"column:protein" json:"protein"`
	Iron     float64 `gorm:"column:iron" json:"iron"`
	Source   string  `gorm:"column:source" json:"source"`
}

// TableName sets the insert table name for this struct type
func (r *ReferenceParameter) TableName() string {
	return "reference_parameters"
}

// Covers 年齡區間兩端皆包含
func (r *ReferenceParameter) Covers(age int) bool {
	return age >= r.AgeMin && age <= r.AgeMax
}
