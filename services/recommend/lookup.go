package recommend

import (
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/structs"
)

// Lookup 外部儲存的唯讀查詢，查無資料回傳 nil, nil
type Lookup interface {
	FindChild(childID int64) (*models.Child, error)
	LatestActiveClinicalRecord(childID int64) (*models.ClinicalRecord, error)
	ReferenceForAge(age int) (*models.ReferenceParameter, error)
	FoodsByCategory(category string) ([]models.Food, error)
}

// Repository 除了查詢還要能以單一交易寫入推薦與稽核紀錄
type Repository interface {
	Lookup
	SaveRecommendation(bundle *structs.RecommendationBundle, audit *models.ActivityLog) error
	InsertActivityLog(entry *models.ActivityLog) error
}
