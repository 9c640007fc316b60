package structs

// ConditionFlags 由病歷文字或結構化欄位得出
type ConditionFlags struct {
	Malnutrition bool `json:"malnutrition"`
	Diabetes     bool `json:"diabetes"`
}

type RequirementInput struct {
	AgeYears      int
	WeightKg      float64
	HeightM       float64
	ActivityLevel string
	Conditions    string
	Flags         ConditionFlags
	IronTarget    float64
}

type MealTarget struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// RequirementSet 單次計算的每日與各餐目標，不落地
type RequirementSet struct {
	BMR            float64        `json:"bmr"`
	ActivityFactor float64        `json:"activity_factor"`
	Calories       float64        `json:"calories"`
	Protein        float64        `json:"protein"`
	Fat            float64        `json:"fat"`
	Carbohydrate   float64        `json:"carbohydrate"`
	Iron           float64        `json:"iron"`
	Flags          ConditionFlags `json:"flags"`
	Breakfast      MealTarget     `json:"breakfast"`
	Lunch          MealTarget     `json:"lunch"`
	Dinner         MealTarget     `json:"dinner"`
}

// Meal 依餐別取出目標，未知餐別回傳零值
func (r RequirementSet) Meal(category string) MealTarget {
	switch category {
	case "breakfast":
		return r.Breakfast
	case "lunch":
		return r.Lunch
	case "dinner":
		return r.Dinner
	}
	return MealTarget{}
}

// CarbohydrateSignal 碳水目標為負代表輸入資料有問題
func (r RequirementSet) CarbohydrateSignal() bool {
	return r.Carbohydrate < 0
}
