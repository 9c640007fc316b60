package recommend

import (
	"encoding/json"
	"errors"
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/services/trackLog"
	"nutrirec-go-worker/services/validation"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evaluatedAt = time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

// memoryLookup 記憶體內的查詢，給 assembler 和 service 測試用
type memoryLookup struct {
	mu         sync.Mutex
	children   map[int64]models.Child
	records    map[int64]models.ClinicalRecord
	references []models.ReferenceParameter
	foods      []models.Food
	foodErr    error
	foodCalls  map[string]int
	// 指定某餐第 n 次查詢回傳空目錄
	emptyOnCall map[string]int
}

func newMemoryLookup() *memoryLookup {
	return &memoryLookup{
		children: map[int64]models.Child{
			1: {ID: 1, Names: "Lucia", PaternalSurname: "Quispe", BirthDate: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Active: true},
		},
		records: map[int64]models.ClinicalRecord{
			1: {ID: 10, ChildID: 1, WeightKg: 16, HeightM: 1.0, ActivityLevel: enums.ActivityLow, Allergies: "Lactosa", Active: true},
		},
		references: []models.ReferenceParameter{
			{ID: 1, AgeMin: 1, AgeMax: 3, Calories: 1000, Protein: 13, Iron: 7},
			{ID: 2, AgeMin: 4, AgeMax: 8, Calories: 1400, Protein: 19, Iron: 10},
		},
		foods: []models.Food{
			{ID: 1, Name: "Leche entera", Category: enums.MealBreakfast, FoodGroup: "lacteos", Calories: 150, Protein: 8, Fat: 8, Allergens: "leche"},
			{ID: 2, Name: "Avena con platano", Category: enums.MealBreakfast, FoodGroup: "cereales_integrales", Calories: 150, Protein: 2, Fat: 3},
			{ID: 3, Name: "Papaya", Category: enums.MealBreakfast, FoodGroup: "frutas", Calories: 60, Protein: 0.5, Fat: 0.2},
			{ID: 4, Name: "Pasta con queso", Category: enums.MealLunch, FoodGroup: "cereales", Calories: 300, Protein: 5, Fat: 9, Allergens: "Lactosa, trigo"},
			{ID: 5, Name: "Arroz con pollo", Category: enums.MealLunch, FoodGroup: "cereales", Calories: 250, Protein: 6, Fat: 6},
			{ID: 6, Name: "Sopa de pescado", Category: enums.MealLunch, FoodGroup: "proteinas", Calories: 100, Protein: 15, Fat: 2, Allergens: "pescado"},
			{ID: 7, Name: "Pescado al horno", Category: enums.MealDinner, FoodGroup: "proteinas", Calories: 150, Protein: 20, Fat: 4, Allergens: "pescado"},
			{ID: 8, Name: "Pure de papa", Category: enums.MealDinner, FoodGroup: "vegetales", Calories: 180, Protein: 4, Fat: 5, Allergens: "Lácteos"},
			{ID: 9, Name: "Pure de zapallo", Category: enums.MealDinner, FoodGroup: "vegetales", Calories: 180, Protein: 4, Fat: 3},
		},
		foodCalls:   map[string]int{},
		emptyOnCall: map[string]int{},
	}
}

func (m *memoryLookup) FindChild(childID int64) (*models.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	child, ok := m.children[childID]
	if !ok {
		return nil, nil
	}
	return &child, nil
}

func (m *memoryLookup) LatestActiveClinicalRecord(childID int64) (*models.ClinicalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[childID]
	if !ok || !record.Active {
		return nil, nil
	}
	return &record, nil
}

func (m *memoryLookup) ReferenceForAge(age int) (*models.ReferenceParameter, error) {
	for _, reference := range m.references {
		if reference.Covers(age) {
			r := reference
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryLookup) FoodsByCategory(category string) ([]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.foodErr != nil {
		return nil, m.foodErr
	}
	m.foodCalls[category]++
	if n, ok := m.emptyOnCall[category]; ok && n == m.foodCalls[category] {
		return nil, nil
	}
	var foods []models.Food
	for _, food := range m.foods {
		if food.Category == category {
			foods = append(foods, food)
		}
	}
	return foods, nil
}

func newTestAssembler(lookup Lookup) *Assembler {
	assembler := NewAssembler(lookup, DefaultConfig())
	assembler.Now = func() time.Time { return evaluatedAt }
	assembler.Logger = trackLog.Entry()
	return assembler
}

func TestGenerateExampleScenario(t *testing.T) {
	assembler := newTestAssembler(newMemoryLookup())

	bundle, err := assembler.Generate(1, "")
	require.NoError(t, err)

	recommendation := bundle.Recommendation
	assert.Equal(t, int64(1), recommendation.ChildID)
	assert.Equal(t, enums.DefaultMotive, recommendation.Motive)
	assert.Equal(t, enums.StatusCurrent, recommendation.Status)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), recommendation.Date)
	assert.Equal(t, []string{"leche"}, recommendation.AvoidedAllergenList())

	assert.InDelta(t, 858.6, bundle.Requirements.BMR, 1e-6)
	assert.InDelta(t, 1030.32, bundle.Requirements.Calories, 1e-6)
	assert.InDelta(t, 24.0, bundle.Requirements.Protein, 1e-6)

	for i, meal := range bundle.Meals() {
		require.NotEmpty(t, meal, "meal %s", enums.MealCategories[i])
		for _, pick := range meal {
			assert.Equal(t, enums.MealCategories[i], pick.Food.Category)
		}
	}
	assert.Equal(t, int64(2), bundle.Breakfast[0].Food.ID)
	assert.Equal(t, int64(5), bundle.Lunch[0].Food.ID)
	assert.Equal(t, int64(9), bundle.Dinner[0].Food.ID)

	calories, protein := validation.Totals(bundle.Meals()...)
	assert.Equal(t, calories, recommendation.TotalCalories)
	assert.Equal(t, protein, recommendation.TotalProtein)

	assert.True(t, bundle.Provenance.Validation.Valid)
	assert.Equal(t, "Generated automatically by recommendation engine v2.0. Recommendation validated successfully.", recommendation.Notes)

	var provenance map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(recommendation.Provenance), &provenance))
	assert.Equal(t, "2.0", provenance["version"])
	assert.Equal(t, float64(4), provenance["age"])
	computed := provenance["computedValues"].(map[string]interface{})
	assert.InDelta(t, 858.6, computed["bmr"], 1e-6)
	assert.InDelta(t, 1.2, computed["activityFactor"], 1e-9)
	conditions := provenance["conditions"].(map[string]interface{})
	assert.Equal(t, []interface{}{"leche"}, conditions["allergies"])
	reference := provenance["referenceTargets"].(map[string]interface{})
	assert.Equal(t, float64(10), reference["iron"])
	validationData := provenance["validation"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, validationData["issues"])
}

func TestGenerateNeverPicksAllergens(t *testing.T) {
	assembler := newTestAssembler(newMemoryLookup())

	bundle, err := assembler.Generate(1, "Control mensual")
	require.NoError(t, err)
	assert.Equal(t, "Control mensual", bundle.Recommendation.Motive)

	for _, meal := range bundle.Meals() {
		for _, pick := range meal {
			for _, tag := range pick.Food.AllergenTags() {
				lowered := strings.ToLower(tag)
				assert.NotContains(t, lowered, "leche")
				assert.NotContains(t, lowered, "lact")
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	lookup := newMemoryLookup()
	assembler := newTestAssembler(lookup)

	first, err := assembler.Generate(1, "")
	require.NoError(t, err)
	second, err := assembler.Generate(1, "")
	require.NoError(t, err)

	assert.Equal(t, first.Recommendation, second.Recommendation)
	assert.Equal(t, first.Meals(), second.Meals())
}

func TestGenerateWarnsWhenIncomplete(t *testing.T) {
	lookup := newMemoryLookup()
	record := lookup.records[1]
	record.Conditions = "Desnutrición crónica"
	lookup.records[1] = record
	assembler := newTestAssembler(lookup)

	bundle, err := assembler.Generate(1, "")
	require.NoError(t, err)

	assert.True(t, bundle.Requirements.Flags.Malnutrition)
	assert.False(t, bundle.Provenance.Validation.Valid)
	assert.NotEmpty(t, bundle.Provenance.Validation.Issues)
	assert.True(t, strings.HasPrefix(bundle.Recommendation.Notes, "Generated automatically by recommendation engine v2.0. Warnings: "))
}

func TestGenerateErrors(t *testing.T) {
	t.Run("child not found", func(t *testing.T) {
		_, err := newTestAssembler(newMemoryLookup()).Generate(99, "")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("missing clinical data", func(t *testing.T) {
		lookup := newMemoryLookup()
		delete(lookup.records, 1)
		_, err := newTestAssembler(lookup).Generate(1, "")
		assert.True(t, errors.Is(err, ErrMissingClinicalData))
	})

	t.Run("inactive clinical record", func(t *testing.T) {
		lookup := newMemoryLookup()
		record := lookup.records[1]
		record.Active = false
		lookup.records[1] = record
		_, err := newTestAssembler(lookup).Generate(1, "")
		assert.True(t, errors.Is(err, ErrMissingClinicalData))
	})

	t.Run("missing reference data", func(t *testing.T) {
		lookup := newMemoryLookup()
		child := lookup.children[1]
		child.BirthDate = time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)
		lookup.children[1] = child
		_, err := newTestAssembler(lookup).Generate(1, "")
		assert.True(t, errors.Is(err, ErrMissingReferenceData))
		assert.Contains(t, err.Error(), "no reference parameters for age 15")
	})

	t.Run("catalog exhausted", func(t *testing.T) {
		lookup := newMemoryLookup()
		record := lookup.records[1]
		record.Allergies = "lactosa, gluten, avena, papaya"
		lookup.records[1] = record
		for i := range lookup.foods {
			if lookup.foods[i].Category == enums.MealBreakfast && lookup.foods[i].Allergens == "" {
				lookup.foods[i].Allergens = strings.ToLower(strings.Fields(lookup.foods[i].Name)[0])
			}
		}
		_, err := newTestAssembler(lookup).Generate(1, "")
		assert.True(t, errors.Is(err, ErrCatalogExhausted))
		assert.Contains(t, err.Error(), enums.MealBreakfast)
	})

	t.Run("lookup failure", func(t *testing.T) {
		lookup := newMemoryLookup()
		lookup.foodErr = errors.New("connection reset")
		_, err := newTestAssembler(lookup).Generate(1, "")
		assert.True(t, errors.Is(err, ErrLookupFailure))
		assert.EqualError(t, errors.Unwrap(err), "connection reset")
	})
}

func TestGenerateOptionsPartialFailure(t *testing.T) {
	lookup := newMemoryLookup()
	lookup.emptyOnCall[enums.MealBreakfast] = 2
	assembler := newTestAssembler(lookup)
	assembler.ConcurrentAmount = 1

	result := assembler.GenerateOptions(1, 3)

	assert.Equal(t, 3, result.Requested)
	assert.NotEmpty(t, result.BatchID)
	require.Equal(t, 2, result.Succeeded())
	assert.Equal(t, "Option 1 of automatic recommendation", result.Options[0].Recommendation.Motive)
	assert.Equal(t, "Option 3 of automatic recommendation", result.Options[1].Recommendation.Motive)
	for _, option := range result.Options {
		assert.Equal(t, result.BatchID, option.Recommendation.BatchID)
	}

	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].Variant)
	assert.Equal(t, string(KindCatalogExhausted), result.Failures[0].Kind)
	assert.Equal(t, int64(1), result.Failures[0].ChildID)
}

func TestGenerateOptionsKeepsVariantOrder(t *testing.T) {
	assembler := newTestAssembler(newMemoryLookup())
	assembler.ConcurrentAmount = 4

	result := assembler.GenerateOptions(1, 5)

	require.Equal(t, 5, result.Succeeded())
	assert.Empty(t, result.Failures)
	for i, option := range result.Options {
		assert.Equal(t, "Option "+string(rune('1'+i))+" of automatic recommendation", option.Recommendation.Motive)
	}
}

type panicLookup struct{ *memoryLookup }

func (p panicLookup) FindChild(childID int64) (*models.Child, error) {
	panic("lookup exploded")
}

func TestGenerateOptionsRecoversPanics(t *testing.T) {
	assembler := newTestAssembler(panicLookup{newMemoryLookup()})

	result := assembler.GenerateOptions(1, 2)

	assert.Zero(t, result.Succeeded())
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "panic: lookup exploded", result.Failures[0].ErrorMessage)
	assert.Equal(t, 1, result.Failures[0].Variant)
	assert.Equal(t, 2, result.Failures[1].Variant)
}

func TestGenerateOptionsZeroCount(t *testing.T) {
	result := newTestAssembler(newMemoryLookup()).GenerateOptions(1, 0)
	assert.Zero(t, result.Succeeded())
	assert.Empty(t, result.Failures)
}
