package usecase

import (
	"strings"
	"unicode"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// maxKeywords は最終キーワードリストの上限件数です。
const maxKeywords = 20

// keywordNoiseTerms はキーワード化しない環境ノイズ語です。
var keywordNoiseTerms = []string{"blue", "pole", "sunlight", "wind", "day", "light", "dark"}

// SynthesizeKeywords は抽出エンティティと高信頼度ラベルから検索用
// キーワードリストを構築します。固定の優先順位で追加し、大文字小文字を
// 区別せず重複排除（先勝ち）、3文字未満を除外、20件で打ち切ります。
func SynthesizeKeywords(entities entity.ExtractedEntities, text string, labels []entity.ScoredLabel) []string {
	var candidates []string

	// 人物（著名人・政治家検索用）。姓名のバリエーションを展開する
	for _, person := range capStrings(entities.People, 3) {
		lower := strings.ToLower(person)
		candidates = append(candidates, lower)
		if strings.Contains(person, " ") {
			fields := strings.Fields(lower)
			first, last := fields[0], fields[len(fields)-1]
			candidates = append(candidates, first, last, first+" "+last)
		}
	}

	// 場所（施設・会場検索用）
	for _, location := range capStrings(entities.Locations, 3) {
		candidates = append(candidates, strings.ToLower(location))
	}

	// 組織（機関検索用）
	for _, org := range capStrings(entities.Organizations, 3) {
		lower := strings.ToLower(org)
		candidates = append(candidates, lower)
		if strings.Contains(lower, "government") {
			candidates = append(candidates, "government agency")
		} else if strings.Contains(lower, "military") {
			candidates = append(candidates, "armed forces")
		}
	}

	// オブジェクト（装備・資産検索用）
	for _, obj := range capStrings(entities.Objects, 5) {
		candidates = append(candidates, strings.ToLower(obj))
	}

	// 国（地理検索用）。外交・政府関連のバリエーションを展開する
	for _, country := range capStrings(entities.Countries, 3) {
		lower := strings.ToLower(country)
		candidates = append(candidates,
			lower,
			lower+" embassy",
			lower+" government",
			lower+" official",
		)
	}

	// 抽出テキスト（型番・識別子検索用）
	if len(text) > 2 && !isAllDigits(text) {
		candidates = append(candidates, strings.TrimSpace(text))
		for _, word := range strings.Fields(text) {
			if len(word) > 3 && isAllLetters(word) {
				candidates = append(candidates, strings.ToLower(word))
			}
		}
	}

	// 高信頼度ラベル（文脈検索用）
	for i, l := range labels {
		if i == 5 {
			break
		}
		lower := strings.ToLower(l.Text)
		if l.Confidence > 0.8 && !containsAny(lower, keywordNoiseTerms) {
			candidates = append(candidates, lower)
		}
	}

	seen := map[string]bool{}
	keywords := make([]string, 0, maxKeywords)
	for _, kw := range candidates {
		key := strings.ToLower(kw)
		if len(kw) <= 2 || seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, kw)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func capStrings(vals []string, n int) []string {
	if len(vals) > n {
		return vals[:n]
	}
	return vals
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
