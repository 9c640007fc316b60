package catalog

import (
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/services/allergy"
	"nutrirec-go-worker/utils"
	"strings"
)

// Eligible 留下該餐別且不含任何過敏原的食品
// 比對包含同義詞，寧可多排除也不能漏掉
func Eligible(category string, normalizedAllergens []string, foods []models.Food) []models.Food {
	var terms []string
	for _, allergen := range normalizedAllergens {
		terms = append(terms, allergy.Terms(allergen)...)
	}

	var result []models.Food
	for _, food := range foods {
		if food.Category != category {
			continue
		}
		if _, hit := Conflict(food, terms); hit {
			continue
		}
		result = append(result, food)
	}
	return result
}

// Conflict 回傳第一個命中的過敏原 tag
func Conflict(food models.Food, terms []string) (string, bool) {
	for _, tag := range food.AllergenTags() {
		folded := utils.Fold(tag)
		for _, term := range terms {
			if term != "" && strings.Contains(folded, term) {
				return tag, true
			}
		}
	}
	return "", false
}
