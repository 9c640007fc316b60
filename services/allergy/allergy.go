package allergy

import (
	"nutrirec-go-worker/utils"
	"sort"
	"strings"
)

// 標準過敏原分類，沿用食品目錄的用語
const (
	Milk      = "leche"
	Egg       = "huevo"
	Wheat     = "trigo"
	Soy       = "soja"
	TreeNuts  = "frutos_secos"
	Shellfish = "mariscos"
	Fish      = "pescado"
)

// 同義詞皆為去重音的小寫
var synonyms = map[string][]string{
	Milk:      {"milk", "lactosa", "lactose", "caseina", "casein", "lacteo", "lacteos", "dairy"},
	Egg:       {"egg", "eggs", "clara", "yema", "egg white", "egg yolk"},
	Wheat:     {"wheat", "gluten", "harina", "flour"},
	Soy:       {"soy", "soya", "soybean"},
	TreeNuts:  {"tree nuts", "frutos secos", "nuez", "nueces", "walnut", "almendra", "almond", "avellana", "hazelnut", "pistacho", "pistachio"},
	Shellfish: {"shellfish", "camaron", "shrimp", "langosta", "lobster", "cangrejo", "crab"},
	Fish:      {"fish", "atun", "tuna", "salmon", "merluza", "hake"},
}

// term -> 標準分類，啟動時建立一次
var canonical = buildCanonical()

func buildCanonical() map[string]string {
	result := make(map[string]string)
	for category, terms := range synonyms {
		result[category] = category
		for _, term := range terms {
			result[term] = category
		}
	}
	return result
}

// Normalize 把逗號分隔的過敏描述轉成標準分類，查不到的原樣保留
func Normalize(freeText string) []string {
	result := []string{}
	if strings.TrimSpace(freeText) == "" {
		return result
	}

	seen := make(map[string]bool)
	for _, raw := range strings.Split(freeText, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		if category, ok := canonical[utils.Fold(token)]; ok {
			token = category
		}
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}
	sort.Strings(result)
	return result
}

// Terms 分類本身加上所有同義詞，用於比對食品的過敏原標籤
func Terms(category string) []string {
	folded := utils.Fold(category)
	if folded == "" {
		return nil
	}
	key, ok := canonical[folded]
	if !ok {
		return []string{folded}
	}
	terms := append([]string{key}, synonyms[key]...)
	return terms
}

// IsCanonical 是否為已知的標準分類
func IsCanonical(category string) bool {
	_, ok := synonyms[category]
	return ok
}
