package database

import (
	"fmt"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/structs"

	"github.com/jinzhu/gorm"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

// Store 以 gorm 實作推薦流程需要的查詢與寫入
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindChild(childID int64) (*models.Child, error) {
	var child models.Child
	if err := s.db.Where("id = ?", childID).First(&child).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &child, nil
}

// LatestActiveClinicalRecord 最近更新的有效病歷
func (s *Store) LatestActiveClinicalRecord(childID int64) (*models.ClinicalRecord, error) {
	var record models.ClinicalRecord
	err := s.db.Where("child_id = ? AND active = ?", childID, true).
		Order("updated_at desc").Order("id desc").
		First(&record).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ReferenceForAge 區間重疊時取 id 最小的
func (s *Store) ReferenceForAge(age int) (*models.ReferenceParameter, error) {
	var reference models.ReferenceParameter
	err := s.db.Where("age_min <= ? AND age_max >= ?", age, age).
		Order("id asc").
		First(&reference).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &reference, nil
}

func (s *Store) FoodsByCategory(category string) ([]models.Food, error) {
	var foods []models.Food
	if err := s.db.Where("category = ?", category).Order("id asc").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// SaveRecommendation 主檔、三餐、稽核紀錄在同一個交易內寫入
func (s *Store) SaveRecommendation(bundle *structs.RecommendationBundle, audit *models.ActivityLog) (err error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = fmt.Errorf("save recommendation panic: %v", r)
		}
	}()

	header := bundle.Recommendation
	if err = tx.Create(&header).Error; err != nil {
		tx.Rollback()
		return err
	}

	breakfast := make([]interface{}, 0, len(bundle.Breakfast))
	for i, pick := range bundle.Breakfast {
		breakfast = append(breakfast, models.RecommendationBreakfast{RecommendationID: header.ID, FoodID: pick.Food.ID, Position: i + 1, Portion: pick.Portion})
	}
	lunch := make([]interface{}, 0, len(bundle.Lunch))
	for i, pick := range bundle.Lunch {
		lunch = append(lunch, models.RecommendationLunch{RecommendationID: header.ID, FoodID: pick.Food.ID, Position: i + 1, Portion: pick.Portion})
	}
	dinner := make([]interface{}, 0, len(bundle.Dinner))
	for i, pick := range bundle.Dinner {
		dinner = append(dinner, models.RecommendationDinner{RecommendationID: header.ID, FoodID: pick.Food.ID, Position: i + 1, Portion: pick.Portion})
	}

	for _, rows := range [][]interface{}{breakfast, lunch, dinner} {
		if len(rows) == 0 {
			continue
		}
		if err = gormbulk.BulkInsert(tx, rows, 3000); err != nil {
			tx.Rollback()
			return err
		}
	}

	if audit != nil {
		audit.SubjectID = header.ID
		if err = tx.Create(audit).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err = tx.Commit().Error; err != nil {
		return err
	}
	bundle.Recommendation = header
	return nil
}

func (s *Store) InsertActivityLog(entry *models.ActivityLog) error {
	return s.db.Create(entry).Error
}

// AutoMigrate 建立推薦流程用到的資料表
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Child{},
		&models.ClinicalRecord{},
		&models.ReferenceParameter{},
		&models.Food{},
		&models.Recommendation{},
		&models.RecommendationBreakfast{},
		&models.RecommendationLunch{},
		&models.RecommendationDinner{},
		&models.ActivityLog{},
	).Error
}
