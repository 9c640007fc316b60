package recommend

import (
	"encoding/json"
	"fmt"
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/services/allergy"
	"nutrirec-go-worker/services/catalog"
	"nutrirec-go-worker/services/optimizer"
	"nutrirec-go-worker/services/requirement"
	"nutrirec-go-worker/services/trackLog"
	"nutrirec-go-worker/services/validation"
	"nutrirec-go-worker/structs"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Assembler 串起計算、過敏原、挑選、驗證，產出一筆完整推薦
// 不寫資料庫，寫入由呼叫端以單一交易處理
type Assembler struct {
	lookup           Lookup
	optimizer        *optimizer.Optimizer
	validator        *validation.Validator
	Now              func() time.Time
	ConcurrentAmount int
	Logger           *logrus.Entry
}

func NewAssembler(lookup Lookup, config structs.RecommendConfig) *Assembler {
	return &Assembler{
		lookup: lookup,
		optimizer: optimizer.New(optimizer.Tolerance{
			MaxCalories: config.OptimizerMaxCalories,
			MaxProtein:  config.OptimizerMaxProtein,
			Satisfied:   config.OptimizerSatisfied,
		}, config.MaxItems),
		validator: validation.New(validation.Tolerance{
			MinCalories: config.ValidatorMinCalories,
			MaxCalories: config.ValidatorMaxCalories,
			MinProtein:  config.ValidatorMinProtein,
		}),
		Now:              time.Now,
		ConcurrentAmount: 1,
	}
}

// DefaultConfig 未讀設定檔時使用的容許範圍
func DefaultConfig() structs.RecommendConfig {
	optimizerTolerance := optimizer.DefaultTolerance()
	validatorTolerance := validation.DefaultTolerance()
	return structs.RecommendConfig{
		MaxItems:             optimizer.DefaultMaxItems,
		OptimizerMaxCalories: optimizerTolerance.MaxCalories,
		OptimizerMaxProtein:  optimizerTolerance.MaxProtein,
		OptimizerSatisfied:   optimizerTolerance.Satisfied,
		ValidatorMinCalories: validatorTolerance.MinCalories,
		ValidatorMaxCalories: validatorTolerance.MaxCalories,
		ValidatorMinProtein:  validatorTolerance.MinProtein,
	}
}

func (a *Assembler) logger() *logrus.Entry {
	if a.Logger != nil {
		return a.Logger
	}
	return trackLog.Entry()
}

// Generate 為單一小孩產生一筆推薦
func (a *Assembler) Generate(childID int64, motive string) (*structs.RecommendationBundle, error) {
	if strings.TrimSpace(motive) == "" {
		motive = enums.DefaultMotive
	}
	logwr := a.logger().WithFields(logrus.Fields{"task": "recommendation", "child_id": childID})

	child, err := a.lookup.FindChild(childID)
	if err != nil {
		return nil, lookupError("find child", err)
	}
	if child == nil {
		return nil, newError(KindNotFound, "child %d does not exist", childID)
	}

	record, err := a.lookup.LatestActiveClinicalRecord(childID)
	if err != nil {
		return nil, lookupError("find clinical record", err)
	}
	if record == nil {
		return nil, newError(KindMissingClinicalData, "no active clinical record for child %d", childID)
	}

	now := a.Now()
	age := requirement.AgeAt(child.BirthDate, now)

	reference, err := a.lookup.ReferenceForAge(age)
	if err != nil {
		return nil, lookupError("find reference parameters", err)
	}
	if reference == nil {
		return nil, newError(KindMissingReferenceData, "no reference parameters for age %d", age)
	}

	// 計算需求
	requirements := requirement.Compute(structs.RequirementInput{
		AgeYears:      age,
		WeightKg:      record.WeightKg,
		HeightM:       record.HeightM,
		ActivityLevel: record.ActivityLevel,
		Conditions:    record.Conditions,
		Flags:         structs.ConditionFlags{Malnutrition: record.Malnutrition, Diabetes: record.Diabetes},
		IronTarget:    reference.Iron,
	})
	if requirements.CarbohydrateSignal() {
		logwr.WithFields(logrus.Fields{"carbohydrate": requirements.Carbohydrate, "weight": record.WeightKg}).Warn("碳水目標為負值，請檢查病歷資料")
	}

	// 過敏原
	allergens := allergy.Normalize(record.Allergies)

	// 每餐先確認有可用食品
	eligible := make([][]models.Food, len(enums.MealCategories))
	for i, category := range enums.MealCategories {
		foods, err := a.lookup.FoodsByCategory(category)
		if err != nil {
			return nil, lookupError(fmt.Sprintf("find %s foods", category), err)
		}
		eligible[i] = catalog.Eligible(category, allergens, foods)
		if len(eligible[i]) == 0 {
			return nil, newError(KindCatalogExhausted, "no %s foods available with the current restrictions", category)
		}
	}

	picks := make([][]structs.ScoredFood, len(enums.MealCategories))
	for i, category := range enums.MealCategories {
		target := requirements.Meal(category)
		picks[i] = a.optimizer.Select(category, eligible[i], target.Calories, target.Protein, age)
		// 有食品但沒有一樣符合份量上限，視同目錄不足
		if len(picks[i]) == 0 {
			return nil, newError(KindCatalogExhausted, "no %s foods fit the meal targets", category)
		}
	}

	valid, issues := a.validator.Validate(picks[0], picks[1], picks[2], requirements)
	if !valid {
		logwr.WithField("issues", issues).Warn("推薦有警告")
	}

	totalCalories, totalProtein := validation.Totals(picks...)
	if issues == nil {
		issues = []string{}
	}

	provenance := structs.Provenance{
		Version: enums.ProvenanceVersion,
		Age:     age,
		PhysicalData: structs.PhysicalData{
			Weight:        record.WeightKg,
			Height:        record.HeightM,
			ActivityLevel: record.ActivityLevel,
		},
		Conditions: structs.ConditionsData{
			Diseases:  record.Conditions,
			Allergies: allergens,
		},
		ReferenceTargets: structs.ReferenceTargets{
			Calories: reference.Calories,
			Protein:  reference.Protein,
			Iron:     reference.Iron,
		},
		ComputedValues: structs.ComputedValues{
			BMR:                  requirements.BMR,
			ActivityFactor:       requirements.ActivityFactor,
			PersonalizedCalories: requirements.Calories,
			PersonalizedProtein:  requirements.Protein,
		},
		Validation: structs.ValidationData{
			Valid:  valid,
			Issues: issues,
		},
	}
	provenanceJSON, err := json.Marshal(provenance)
	if err != nil {
		return nil, fmt.Errorf("marshal provenance: %w", err)
	}

	recommendation := models.Recommendation{
		ChildID:       child.ID,
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Motive:        motive,
		Provenance:    string(provenanceJSON),
		Status:        enums.StatusCurrent,
		TotalCalories: totalCalories,
		TotalProtein:  totalProtein,
		Notes:         notes(issues),
	}
	recommendation.SetAvoidedAllergens(allergens)

	logwr.WithFields(logrus.Fields{"age": age, "calories": totalCalories, "protein": totalProtein, "valid": valid}).Info("推薦產生完成")

	return &structs.RecommendationBundle{
		Recommendation: recommendation,
		Provenance:     provenance,
		Requirements:   requirements,
		Breakfast:      picks[0],
		Lunch:          picks[1],
		Dinner:         picks[2],
	}, nil
}

func notes(issues []string) string {
	header := "Generated automatically by recommendation engine v" + enums.ProvenanceVersion + ". "
	if len(issues) > 0 {
		return header + "Warnings: " + strings.Join(issues, "; ")
	}
	return header + "Recommendation validated successfully."
}

// GenerateOptions 產生多個推薦讓使用者挑選，單一失敗不影響其他
func (a *Assembler) GenerateOptions(childID int64, count int) structs.OptionsResult {
	result := structs.OptionsResult{BatchID: uuid.New().String(), Requested: count}
	if count <= 0 {
		return result
	}

	bundles := make([]*structs.RecommendationBundle, count)
	failures := make([]*structs.ErrorModel, count)

	// 限制同時執行的數量
	amount := a.ConcurrentAmount
	if amount <= 0 {
		amount = 1
	}
	concurrentGoroutines := make(chan struct{}, amount)

	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		concurrentGoroutines <- struct{}{}
		go func(variant int) {
			defer func() {
				if r := recover(); r != nil {
					failures[variant] = &structs.ErrorModel{ChildID: childID, Variant: variant + 1, ErrorMessage: fmt.Sprintf("panic: %v", r)}
				}
				<-concurrentGoroutines
				wg.Done()
			}()

			bundle, err := a.Generate(childID, fmt.Sprintf("Option %d of automatic recommendation", variant+1))
			if err != nil {
				failures[variant] = &structs.ErrorModel{ChildID: childID, Variant: variant + 1, Kind: string(KindOf(err)), ErrorMessage: err.Error()}
				return
			}
			bundle.Recommendation.BatchID = result.BatchID
			bundles[variant] = bundle
		}(i)
	}
	wg.Wait()
	close(concurrentGoroutines)

	for i := 0; i < count; i++ {
		if bundles[i] != nil {
			result.Options = append(result.Options, *bundles[i])
		}
		if failures[i] != nil {
			a.logger().WithFields(logrus.Fields{"task": "recommendation", "child_id": childID, "variant": i + 1, "kind": failures[i].Kind}).Warn("無法產生選項: ", failures[i].ErrorMessage)
			result.Failures = append(result.Failures, *failures[i])
		}
	}
	return result
}
