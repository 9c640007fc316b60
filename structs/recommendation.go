package structs

import "nutrirec-go-worker/models"

// RecommendationBundle 推薦主檔 + 三餐，須以單一交易寫入
type RecommendationBundle struct {
	Recommendation models.Recommendation
	Provenance     Provenance
	Requirements   RequirementSet
	Breakfast      []ScoredFood
	Lunch          []ScoredFood
	Dinner         []ScoredFood
}

// Meals 依 breakfast, lunch, dinner 順序
func (b *RecommendationBundle) Meals() [][]ScoredFood {
	return [][]ScoredFood{b.Breakfast, b.Lunch, b.Dinner}
}

type OptionsResult struct {
	BatchID   string                 `json:"batch_id"`
	Requested int                    `json:"requested"`
	Options   []RecommendationBundle `json:"-"`
	Failures  []ErrorModel           `json:"failures"`
}

func (o OptionsResult) Succeeded() int {
	return len(o.Options)
}
