package structs

import "nutrirec-go-worker/models"

type ScoredFood struct {
	Food              models.Food `json:"food"`
	NutritionalScore  float64     `json:"nutritional_score"`
	PalatabilityScore float64     `json:"palatability_score"`
	CombinedScore     float64     `json:"combined_score"`
	Portion           float64     `json:"portion"`
}

// Calories 乘上建議份量後的熱量
func (s ScoredFood) Calories() float64 {
	return s.Food.Calories * s.Portion
}

func (s ScoredFood) Protein() float64 {
	return s.Food.Protein * s.Portion
}
