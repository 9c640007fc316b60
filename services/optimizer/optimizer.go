package optimizer

import (
	"math"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/structs"
	"nutrirec-go-worker/utils"
	"sort"
)

const (
	DefaultMaxItems = 5
	MaxPortion      = 2.0
)

// 營養價值較高的食物分類
var valuableGroups = map[string]bool{
	"vegetales":           true,
	"vegetables":          true,
	"frutas":              true,
	"fruits":              true,
	"proteinas":           true,
	"protein-rich":        true,
	"lacteos":             true,
	"dairy":               true,
	"cereales_integrales": true,
	"whole-grain-cereals": true,
}

// 小孩普遍接受的食物，命中一個就加分
var childFriendly = []string{
	"pollo", "chicken", "pasta", "arroz", "rice", "platano", "banana", "manzana", "apple",
	"yogur", "yogurt", "queso", "cheese", "pan", "bread", "leche", "milk",
}

var softTextures = []string{"pure", "puree", "suave", "soft", "cremoso", "creamy"}

// Tolerance 選擇時的累積上限與滿足門檻，和驗證的容許範圍分開
type Tolerance struct {
	MaxCalories float64
	MaxProtein  float64
	Satisfied   float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{MaxCalories: 1.2, MaxProtein: 1.3, Satisfied: 0.8}
}

type Optimizer struct {
	Tolerance Tolerance
	MaxItems  int
}

func New(tolerance Tolerance, maxItems int) *Optimizer {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Optimizer{Tolerance: tolerance, MaxItems: maxItems}
}

// NutritionalScore 蛋白質密度加上分類加分、高脂扣分
func NutritionalScore(food models.Food) float64 {
	if food.Calories <= 0 {
		return 0
	}
	score := food.Protein / food.Calories * 100
	if valuableGroups[utils.Fold(food.FoodGroup)] {
		score += 20
	}
	// 脂肪熱量超過 40%
	if food.Fat*9 > food.Calories*0.4 {
		score -= 15
	}
	return math.Max(0, score)
}

// PalatabilityScore 依名稱與年齡估計接受度
func PalatabilityScore(food models.Food, ageYears int) float64 {
	score := 50.0
	name := utils.Fold(food.Name)
	if _, ok := utils.ContainsAny(name, childFriendly); ok {
		score += 25
	}
	if ageYears < 5 {
		if _, ok := utils.ContainsAny(name, softTextures); ok {
			score += 15
		}
	} else if ageYears > 10 {
		score += 10
	}
	return score
}

// Portion 份量倍數，上限 2 份
func Portion(food models.Food, targetCalories float64) float64 {
	if food.Calories <= 0 {
		return 1.0
	}
	return math.Max(0, math.Min(targetCalories/food.Calories, MaxPortion))
}

func Score(food models.Food, targetCalories float64, ageYears int) structs.ScoredFood {
	nutritional := NutritionalScore(food)
	palatability := PalatabilityScore(food, ageYears)
	return structs.ScoredFood{
		Food:              food,
		NutritionalScore:  nutritional,
		PalatabilityScore: palatability,
		CombinedScore:     0.7*nutritional + 0.3*palatability,
		Portion:           Portion(food, targetCalories),
	}
}

// Select 依總分排序後貪婪挑選，同一分類只取一樣
func (o *Optimizer) Select(category string, foods []models.Food, targetCalories, targetProtein float64, ageYears int) []structs.ScoredFood {
	scored := make([]structs.ScoredFood, 0, len(foods))
	for _, food := range foods {
		if category != "" && food.Category != category {
			continue
		}
		scored = append(scored, Score(food, targetCalories, ageYears))
	}

	// 同分維持目錄順序
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})

	maxItems := o.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	var (
		picks      []structs.ScoredFood
		calories   float64
		protein    float64
		usedGroups = make(map[string]bool)
	)
	for _, candidate := range scored {
		if len(picks) >= maxItems {
			break
		}

		group := utils.Fold(candidate.Food.FoodGroup)
		if usedGroups[group] {
			continue
		}

		addCalories := candidate.Calories()
		addProtein := candidate.Protein()
		if calories+addCalories > targetCalories*o.Tolerance.MaxCalories ||
			protein+addProtein > targetProtein*o.Tolerance.MaxProtein {
			continue
		}

		picks = append(picks, candidate)
		calories += addCalories
		protein += addProtein
		usedGroups[group] = true

		// 熱量和蛋白質都達標就停
		if calories >= targetCalories*o.Tolerance.Satisfied && protein >= targetProtein*o.Tolerance.Satisfied {
			break
		}
	}
	return picks
}
