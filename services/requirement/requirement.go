package requirement

import (
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/structs"
	"nutrirec-go-worker/utils"
	"time"
)

// DefaultActivityFactor 活動量未知時使用，不歸到任何一個等級
const DefaultActivityFactor = 1.4

var activityFactors = map[string]float64{
	enums.ActivityLow:    1.2,
	enums.ActivityMedium: 1.5,
	enums.ActivityHigh:   1.8,
}

// 各餐分配比例，總和為 1
var (
	calorieSplit = map[string]float64{enums.MealBreakfast: 0.25, enums.MealLunch: 0.40, enums.MealDinner: 0.35}
	proteinSplit = map[string]float64{enums.MealBreakfast: 0.20, enums.MealLunch: 0.45, enums.MealDinner: 0.35}
)

var (
	malnutritionTerms = []string{"desnutricion", "malnutrition", "undernutrition"}
	diabetesTerms     = []string{"diabetes"}
)

// BMR Schofield 兒童公式，不分性別取平均係數
func BMR(ageYears int, weightKg float64) float64 {
	switch {
	case ageYears < 3:
		return 59.5*weightKg - 30.4
	case ageYears < 10:
		return 22.6*weightKg + 497
	default:
		return 14.85*weightKg + 698.5
	}
}

// ActivityFactor 第二個回傳值表示是否為已知等級
func ActivityFactor(level string) (float64, bool) {
	if factor, ok := activityFactors[utils.Fold(level)]; ok {
		return factor, true
	}
	return DefaultActivityFactor, false
}

// ParseConditions 從診斷文字找出需要調整的狀況
func ParseConditions(text string) structs.ConditionFlags {
	folded := utils.Fold(text)
	var flags structs.ConditionFlags
	_, flags.Malnutrition = utils.ContainsAny(folded, malnutritionTerms)
	_, flags.Diabetes = utils.ContainsAny(folded, diabetesTerms)
	return flags
}

// Compute 計算每日與各餐的熱量、蛋白質目標
func Compute(in structs.RequirementInput) structs.RequirementSet {
	flags := ParseConditions(in.Conditions)
	flags.Malnutrition = flags.Malnutrition || in.Flags.Malnutrition
	flags.Diabetes = flags.Diabetes || in.Flags.Diabetes

	bmr := BMR(in.AgeYears, in.WeightKg)
	factor, _ := ActivityFactor(in.ActivityLevel)

	calories := bmr * factor
	if flags.Malnutrition {
		calories *= 1.2
	}
	if flags.Diabetes {
		calories *= 0.95
	}

	proteinPerKg := 1.2
	if in.AgeYears < 6 {
		proteinPerKg = 1.5
	}
	if flags.Malnutrition {
		proteinPerKg *= 1.3
	}
	protein := in.WeightKg * proteinPerKg

	fat := calories * 0.32 / 9
	// 不做下限處理，負值交給呼叫端當資料品質訊號
	carbohydrate := (calories - protein*4 - fat*9) / 4

	result := structs.RequirementSet{
		BMR:            bmr,
		ActivityFactor: factor,
		Calories:       calories,
		Protein:        protein,
		Fat:            fat,
		Carbohydrate:   carbohydrate,
		Iron:           in.IronTarget,
		Flags:          flags,
	}
	result.Breakfast = mealTarget(calories, protein, enums.MealBreakfast)
	result.Lunch = mealTarget(calories, protein, enums.MealLunch)
	result.Dinner = mealTarget(calories, protein, enums.MealDinner)
	return result
}

func mealTarget(calories, protein float64, category string) structs.MealTarget {
	return structs.MealTarget{
		Calories: calories * calorieSplit[category],
		Protein:  protein * proteinSplit[category],
	}
}

// AgeAt 以評估當天計算足歲
func AgeAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	if at.Month() < birthDate.Month() || (at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		age--
	}
	return age
}
