package validation

import (
	"fmt"
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/structs"
)

// Tolerance 整份推薦的容許範圍，與挑選時的上限是兩套獨立設定
type Tolerance struct {
	MinCalories float64
	MaxCalories float64
	MinProtein  float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{MinCalories: 0.7, MaxCalories: 1.3, MinProtein: 0.8}
}

type Validator struct {
	Tolerance Tolerance
}

func New(tolerance Tolerance) *Validator {
	return &Validator{Tolerance: tolerance}
}

// Totals 加總各餐乘上份量後的熱量與蛋白質
func Totals(meals ...[]structs.ScoredFood) (float64, float64) {
	var calories, protein float64
	for _, meal := range meals {
		for _, pick := range meal {
			calories += pick.Calories()
			protein += pick.Protein()
		}
	}
	return calories, protein
}

// Validate 只產生警告，不阻擋寫入
// 空餐的檢查只有直接呼叫時會觸發，Generate 遇到空餐已先回傳 CatalogExhausted
func (v *Validator) Validate(breakfast, lunch, dinner []structs.ScoredFood, requirements structs.RequirementSet) (bool, []string) {
	var issues []string
	calories, protein := Totals(breakfast, lunch, dinner)

	if minimum := requirements.Calories * v.Tolerance.MinCalories; calories < minimum {
		issues = append(issues, fmt.Sprintf("insufficient calories: %.0f < %.0f", calories, minimum))
	}
	if maximum := requirements.Calories * v.Tolerance.MaxCalories; calories > maximum {
		issues = append(issues, fmt.Sprintf("excess calories: %.0f > %.0f", calories, maximum))
	}
	if minimum := requirements.Protein * v.Tolerance.MinProtein; protein < minimum {
		issues = append(issues, fmt.Sprintf("insufficient protein: %.1f < %.1f", protein, minimum))
	}

	meals := [][]structs.ScoredFood{breakfast, lunch, dinner}
	for i, category := range enums.MealCategories {
		if len(meals[i]) == 0 {
			issues = append(issues, fmt.Sprintf("no foods for %s", category))
		}
	}
	return len(issues) == 0, issues
}
