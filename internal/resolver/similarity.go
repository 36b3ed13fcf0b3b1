package resolver

import (
	"strings"
)

const (
	scoreEqual     = 100.0
	scoreSubstring = 80.0
	scoreKeyword   = 70.0
	scoreCharset   = 50.0

	// MatchThreshold is the lowest score a fuzzy candidate may have.
	MatchThreshold = 60.0
)

type keywordCategory struct {
	name     string
	keywords []string
}

// Ordered; the first matching category decides.
var keywordCategories = []keywordCategory{
	{name: "medicion", keywords: []string{"medicion", "equipo", "equipos", "izaje", "elementos"}},
	{name: "personas", keywords: []string{"persona", "personal", "trabajador"}},
	{name: "fisicos", keywords: []string{"fisico", "physical"}},
	{name: "quimicos", keywords: []string{"quimico", "chemical"}},
	{name: "biologicos", keywords: []string{"biologico", "biological"}},
	{name: "ergonomico", keywords: []string{"ergonomico", "psicosocial"}},
}

// Similarity scores two type codes between 0 and 100. The comparison is case-insensitive:
// equal codes score 100, containment 80, a shared keyword category 70, and anything else
// 50 times the share of distinct characters the codes have in common.
func Similarity(a, b string) float64 {
	s1, s2 := strings.ToLower(a), strings.ToLower(b)

	if s1 == s2 {
		return scoreEqual
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return scoreSubstring
	}

	for _, category := range keywordCategories {
		if containsAny(s1, category.keywords) && strings.Contains(s2, category.name) {
			return scoreKeyword
		}
		if containsAny(s2, category.keywords) && strings.Contains(s1, category.name) {
			return scoreKeyword
		}
	}

	r1, r2 := []rune(s1), []rune(s2)
	longest := max(len(r1), len(r2))
	if longest == 0 {
		return 0
	}

	chars := make(map[rune]struct{}, len(r1))
	for _, r := range r1 {
		chars[r] = struct{}{}
	}

	common := 0
	for _, r := range r2 {
		if _, ok := chars[r]; ok {
			common++
			delete(chars, r)
		}
	}

	return float64(common) / float64(longest) * scoreCharset
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
