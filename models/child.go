package models

import "time"

type Child struct {
	ID              int64      `gorm:"column:id;primary_key" json:"id"`
	UserID          int64      `gorm:"column:user_id" json:"user_id"`
	Names           string     `gorm:"column:names" json:"names"`
	PaternalSurname string     `gorm:"column:paternal_surname" json:"paternal_surname"`
	MaternalSurname string     `gorm:"column:maternal_surname" json:"maternal_surname"`
	BirthDate       time.Time  `gorm:"column:birth_date" json:"birth_date"`
	Active          bool       `gorm:"column:active" json:"active"`
	CreatedAt       *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (c *Child) TableName() string {
	return "children"
}

// FullName 顯示用姓名
func (c *Child) FullName() string {
	return c.Names + " " + c.PaternalSurname
}
