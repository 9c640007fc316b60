package database

import (
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/structs"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store, db
}

func TestFindChild(t *testing.T) {
	store, db := newTestStore(t)
	require.NoError(t, db.Create(&models.Child{ID: 1, Names: "Ana", BirthDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), Active: true}).Error)

	child, err := store.FindChild(1)
	require.NoError(t, err)
	require.NotNil(t, child)
	assert.Equal(t, "Ana", child.Names)

	missing, err := store.FindChild(99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLatestActiveClinicalRecord(t *testing.T) {
	store, db := newTestStore(t)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.ClinicalRecord{ID: 1, ChildID: 1, WeightKg: 18, Active: true, UpdatedAt: &older}).Error)
	require.NoError(t, db.Create(&models.ClinicalRecord{ID: 2, ChildID: 1, WeightKg: 20, Active: true, UpdatedAt: &newer}).Error)
	require.NoError(t, db.Create(&models.ClinicalRecord{ID: 3, ChildID: 1, WeightKg: 22, Active: false, UpdatedAt: &newest}).Error)

	record, err := store.LatestActiveClinicalRecord(1)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(2), record.ID)

	none, err := store.LatestActiveClinicalRecord(2)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReferenceForAge(t *testing.T) {
	store, db := newTestStore(t)
	require.NoError(t, db.Create(&models.ReferenceParameter{ID: 1, AgeMin: 1, AgeMax: 3, Calories: 1000, Protein: 13, Iron: 7}).Error)
	require.NoError(t, db.Create(&models.ReferenceParameter{ID: 2, AgeMin: 4, AgeMax: 8, Calories: 1400, Protein: 19, Iron: 10}).Error)
	require.NoError(t, db.Create(&models.ReferenceParameter{ID: 3, AgeMin: 5, AgeMax: 9, Calories: 1500, Protein: 20, Iron: 11}).Error)

	reference, err := store.ReferenceForAge(5)
	require.NoError(t, err)
	require.NotNil(t, reference)
	assert.Equal(t, int64(2), reference.ID)

	reference, err = store.ReferenceForAge(3)
	require.NoError(t, err)
	require.NotNil(t, reference)
	assert.Equal(t, int64(1), reference.ID)

	missing, err := store.ReferenceForAge(15)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFoodsByCategory(t *testing.T) {
	store, db := newTestStore(t)
	require.NoError(t, db.Create(&models.Food{ID: 2, Name: "Avena", Category: enums.MealBreakfast, Calories: 150}).Error)
	require.NoError(t, db.Create(&models.Food{ID: 1, Name: "Leche", Category: enums.MealBreakfast, Calories: 120}).Error)
	require.NoError(t, db.Create(&models.Food{ID: 3, Name: "Pollo", Category: enums.MealLunch, Calories: 250}).Error)

	foods, err := store.FoodsByCategory(enums.MealBreakfast)
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, int64(1), foods[0].ID)
	assert.Equal(t, int64(2), foods[1].ID)

	foods, err = store.FoodsByCategory("snack")
	require.NoError(t, err)
	assert.Empty(t, foods)
}

func testBundle() *structs.RecommendationBundle {
	recommendation := models.Recommendation{
		ChildID:       1,
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Motive:        enums.DefaultMotive,
		Status:        enums.StatusCurrent,
		TotalCalories: 900,
		TotalProtein:  30,
	}
	recommendation.SetAvoidedAllergens([]string{"leche"})
	return &structs.RecommendationBundle{
		Recommendation: recommendation,
		Breakfast:      []structs.ScoredFood{{Food: models.Food{ID: 1}, Portion: 1.5}, {Food: models.Food{ID: 2}, Portion: 1}},
		Lunch:          []structs.ScoredFood{{Food: models.Food{ID: 3}, Portion: 1}},
		Dinner:         []structs.ScoredFood{{Food: models.Food{ID: 4}, Portion: 0.5}},
	}
}

func TestSaveRecommendation(t *testing.T) {
	store, db := newTestStore(t)
	bundle := testBundle()
	audit := &models.ActivityLog{ActorID: 5, Role: "pediatra", Action: enums.ActionCreate, Module: enums.ModuleRecommendation}

	require.NoError(t, store.SaveRecommendation(bundle, audit))
	require.NotZero(t, bundle.Recommendation.ID)

	var saved models.Recommendation
	require.NoError(t, db.First(&saved, bundle.Recommendation.ID).Error)
	assert.Equal(t, enums.StatusCurrent, saved.Status)
	assert.Equal(t, []string{"leche"}, saved.AvoidedAllergenList())

	var breakfasts []models.RecommendationBreakfast
	require.NoError(t, db.Where("recommendation_id = ?", saved.ID).Order("position asc").Find(&breakfasts).Error)
	require.Len(t, breakfasts, 2)
	assert.Equal(t, int64(1), breakfasts[0].FoodID)
	assert.Equal(t, 1.5, breakfasts[0].Portion)
	assert.Equal(t, 2, breakfasts[1].Position)

	var lunchCount, dinnerCount int
	db.Model(&models.RecommendationLunch{}).Where("recommendation_id = ?", saved.ID).Count(&lunchCount)
	db.Model(&models.RecommendationDinner{}).Where("recommendation_id = ?", saved.ID).Count(&dinnerCount)
	assert.Equal(t, 1, lunchCount)
	assert.Equal(t, 1, dinnerCount)

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, saved.ID, logs[0].SubjectID)
	assert.Equal(t, enums.ModuleRecommendation, logs[0].Module)
}

func TestSaveRecommendationRollsBackOnMealFailure(t *testing.T) {
	store, db := newTestStore(t)
	bundle := testBundle()
	// 同一餐重複 food 觸發 unique index
	bundle.Dinner = []structs.ScoredFood{{Food: models.Food{ID: 4}, Portion: 1}, {Food: models.Food{ID: 4}, Portion: 1}}

	err := store.SaveRecommendation(bundle, &models.ActivityLog{Action: enums.ActionCreate})
	require.Error(t, err)

	var recommendationCount, breakfastCount, logCount int
	db.Model(&models.Recommendation{}).Count(&recommendationCount)
	db.Model(&models.RecommendationBreakfast{}).Count(&breakfastCount)
	db.Model(&models.ActivityLog{}).Count(&logCount)
	assert.Zero(t, recommendationCount)
	assert.Zero(t, breakfastCount)
	assert.Zero(t, logCount)
}

func TestInsertActivityLog(t *testing.T) {
	store, db := newTestStore(t)
	require.NoError(t, store.InsertActivityLog(&models.ActivityLog{LogName: enums.RecommendationLogName, Properties: "{}"}))

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, enums.RecommendationLogName, entry.LogName)
}
