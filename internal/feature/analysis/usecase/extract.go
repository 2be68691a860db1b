package usecase

import (
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// 抽出結果リストの上限件数。
const (
	maxPeople        = 5
	maxLocations     = 5
	maxOrganizations = 5
	maxObjects       = 8
)

// ExtractEntities は正規化済みアノテーションから人物・場所・組織・
// オブジェクト・国を抽出します。各リストは大文字小文字を区別せず
// 重複排除され、上限件数で切り詰められます。
func ExtractEntities(ann *entity.Annotations) entity.ExtractedEntities {
	return entity.ExtractedEntities{
		People:        extractPeople(ann),
		Locations:     extractLocations(ann),
		Organizations: extractOrganizations(ann),
		Objects:       extractObjects(ann),
		Countries:     extractCountries(ann),
	}
}

// extractPeople は人物の名前および役職を抽出します。
func extractPeople(ann *entity.Annotations) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	for _, l := range ann.Labels {
		lower := strings.ToLower(l.Text)
		if l.Confidence > 0.6 && containsAny(lower, politicalTitleTerms) && !containsAny(lower, genericPersonTerms) {
			add(l.Text)
		}
		// フォーマルな場面の語は政治的人物の存在を示唆する
		if l.Confidence > 0.7 && containsAny(lower, formalSettingTerms) {
			add("Political figure")
		}
	}

	for _, f := range ann.Faces {
		if f.CelebrityName != "" {
			add(f.CelebrityName)
		}
		if f.Name != "" {
			add(f.Name)
		}
	}

	for _, we := range ann.Web.WebEntities {
		lower := strings.ToLower(we.Text)
		if containsAny(lower, politicalTitleTerms) && !containsAny(lower, genericPersonTerms) {
			add(we.Text)
		}
	}

	// ページタイトルの「<Name> at ...」「<Name> meets ...」パターンから先頭語を人名候補として採用
	skipFirstTokens := map[string]bool{"the": true, "a": true, "an": true, "official": true, "government": true}
	for _, p := range ann.Web.MatchingPages {
		lower := strings.ToLower(p.Title)
		if !containsAny(lower, nameConnectors) {
			continue
		}
		fields := strings.Fields(p.Title)
		if len(fields) == 0 {
			continue
		}
		first := fields[0]
		if len(first) > 2 && !skipFirstTokens[strings.ToLower(first)] {
			add(first)
		}
	}

	if len(out) > maxPeople {
		out = out[:maxPeople]
	}
	return out
}

// extractLocations は場所・建物・ランドマークを抽出します。
func extractLocations(ann *entity.Annotations) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	for _, l := range ann.Labels {
		if l.Confidence > 0.7 && containsAny(strings.ToLower(l.Text), locationTerms) {
			add(l.Text)
		}
	}

	// ランドマーク検出結果はそのまま採用
	for _, lm := range ann.Landmarks {
		add(lm.Text)
	}

	titleCount := 0
	for _, p := range ann.Web.MatchingPages {
		if titleCount >= 3 {
			break
		}
		if containsAny(strings.ToLower(p.Title), locationTerms) {
			add(p.Title)
			titleCount++
		}
	}

	if len(out) > maxLocations {
		out = out[:maxLocations]
	}
	return out
}

// extractOrganizations は組織名を抽出します。ロゴ検出結果は組織名の
// 最も確実なソースとしてそのまま採用されます。
func extractOrganizations(ann *entity.Annotations) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	for _, l := range ann.Labels {
		lower := strings.ToLower(l.Text)
		if l.Confidence > 0.75 && containsAny(lower, orgTerms) && !containsAny(lower, orgExcludeTerms) {
			add(l.Text)
		}
	}

	for _, logo := range ann.Logos {
		add(logo.Text)
	}

	if len(out) > maxOrganizations {
		out = out[:maxOrganizations]
	}
	return out
}

// extractObjects は物理的オブジェクトを抽出します。
func extractObjects(ann *entity.Annotations) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	for _, l := range ann.Labels {
		lower := strings.ToLower(l.Text)
		if l.Confidence > 0.75 && containsAny(lower, objectTerms) && !containsAny(lower, envNoiseTerms) {
			add(l.Text)
		}
	}

	for _, o := range ann.Objects {
		lower := strings.ToLower(o.Name)
		if o.Confidence > 0.65 && lower != "person" && lower != "people" {
			add(o.Name)
		}
	}

	if len(out) > maxObjects {
		out = out[:maxObjects]
	}
	return out
}

// extractCountries は国旗・国章由来の国名を検出順に抽出します。
// 各ラベルにつき最初に一致した国のみ採用されます。
func extractCountries(ann *entity.Annotations) []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range ann.Labels {
		if l.Confidence <= 0.6 {
			continue
		}
		lower := strings.ToLower(l.Text)
		for _, country := range countryIndicatorOrder {
			if containsAny(lower, countryIndicators[country]) {
				if !seen[country] {
					seen[country] = true
					out = append(out, country)
				}
				break
			}
		}
	}
	return out
}

// FilterExtractedText は検出テキストを軍事識別子を含む場合のみ保持します。
// OCRノイズ（看板、透かし等）を結果に混入させないための保守的な方針です。
func FilterExtractedText(ann *entity.Annotations) string {
	text := ann.FullText()
	if text == "" {
		return ""
	}
	if containsAny(strings.ToLower(text), militaryTextIndicators) {
		return text
	}
	return ""
}

// DetectEquipment は高信頼度の軍事装備検出があるかを返します。
// 信頼度ボーナスの判定にのみ使用されます。
func DetectEquipment(ann *entity.Annotations) bool {
	for _, l := range ann.Labels {
		lower := strings.ToLower(l.Text)
		if l.Confidence >= 0.95 && containsAny(lower, equipmentTerms) && !containsAny(lower, equipmentExcludeTerms) {
			return true
		}
	}
	for _, o := range ann.Objects {
		lower := strings.ToLower(o.Name)
		if o.Confidence >= 0.85 && containsAny(lower, equipmentTerms) && !containsAny(lower, equipmentExcludeTerms) {
			return true
		}
	}
	return false
}
