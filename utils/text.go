package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold 轉小寫、去頭尾空白並移除重音符號，"Desnutrición" -> "desnutricion"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsAny 回傳 s 中第一個命中的關鍵字
func ContainsAny(s string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return keyword, true
		}
	}
	return "", false
}
