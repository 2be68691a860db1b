package usecase

import (
	"context"
	"log/slog"
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// 本ファイルはシーンカスケードより優先されるWebコンテキスト由来の
// 記述候補の評価を実装します。優先順位はベストゲスラベル →
// 特殊エンティティ組み合わせ → 個別Webエンティティ → スクレイピング →
// ページタイトルの順です。

// pageTitleSkipTerms は記述として不適切なページタイトルの判定語です。
var pageTitleSkipTerms = []string{
	"google", "search", "images", "photos", "picture", "photo",
	"stock", "free", "download", "wallpaper", "background",
	"youtube", "video", "channel", "playlist",
}

// webDescription はWebコンテキストから記述候補を評価します。
// 採用できる候補がない場合は ok=false を返します。
func (u *AnalyzeUsecase) webDescription(ctx context.Context, ann *entity.Annotations) (SceneOutcome, bool) {
	web := ann.Web
	labels := highConfidenceLabels(ann.Labels)

	// サービス自身の最有力解釈を最優先する
	for _, guess := range capStrings(web.BestGuessLabels, 2) {
		guess = strings.TrimSpace(guess)
		if guess == "" || !IsGoodDescription(guess) {
			continue
		}
		if clean := CleanWebTitle(guess); clean != "" {
			return SceneOutcome{BranchWebShortcut, clean}, true
		}
	}

	if outcome, ok := specialEntityCase(labels, web.WebEntities); ok {
		return outcome, true
	}

	// 個別の高品質エンティティ
	for i, we := range web.WebEntities {
		if i == 5 {
			break
		}
		if we.Text == "" || !IsGoodDescription(we.Text) {
			continue
		}
		if clean := CleanWebTitle(we.Text); clean != "" {
			return SceneOutcome{BranchWebShortcut, clean}, true
		}
	}

	if desc, ok := u.scrapedDescription(ctx, ann); ok {
		return SceneOutcome{BranchWebShortcut, desc}, true
	}

	// 一致ページのタイトル（最も優先度の低いソース）
	for _, page := range capPages(web.MatchingPages, 2) {
		title := strings.TrimSpace(page.Title)
		if title == "" || containsAny(strings.ToLower(title), pageTitleSkipTerms) {
			continue
		}
		if clean := CleanWebTitle(title); len(clean) > 25 {
			return SceneOutcome{BranchWebShortcut, clean}, true
		}
	}

	return SceneOutcome{}, false
}

// specialEntityCase はWebエンティティの固定の組み合わせルールを評価します。
// いずれも連結小文字テキストに対するリテラルな部分文字列判定です。
func specialEntityCase(labels []entity.ScoredLabel, webEntities []entity.ScoredLabel) (SceneOutcome, bool) {
	var entityTexts []string
	for _, we := range webEntities {
		if we.Text != "" {
			entityTexts = append(entityTexts, strings.ToLower(we.Text))
		}
	}

	// 食品ラベル + コロンビア/草本エンティティは密輸容疑の組み合わせ
	hasFoodLabel := false
	for _, l := range labels {
		lower := strings.ToLower(l.Text)
		if lower == "food" || lower == "produce" || lower == "plant" {
			hasFoodLabel = true
			break
		}
	}
	if hasFoodLabel {
		for _, t := range entityTexts {
			if t == "colombia" || t == "grass" || t == "grasses" {
				return SceneOutcome{BranchSpecialCase, "Suspected contraband or illegal substance."}, true
			}
		}
	}

	top := entityTexts
	if len(top) > 5 {
		top = top[:5]
	}
	es := strings.Join(top, " ")
	if es == "" {
		return SceneOutcome{}, false
	}

	if strings.Contains(es, "submarine") {
		switch {
		case strings.Contains(es, "russia") || strings.Contains(es, "russian"):
			return SceneOutcome{BranchSpecialCase, "Russian military submarine."}, true
		case strings.Contains(es, "china") || strings.Contains(es, "chinese"):
			return SceneOutcome{BranchSpecialCase, "Chinese military submarine."}, true
		case strings.Contains(es, "united states") || strings.Contains(es, "america"):
			return SceneOutcome{BranchSpecialCase, "American military submarine."}, true
		}
	}

	if strings.Contains(es, "soldier") && strings.Contains(es, "infantry") {
		return SceneOutcome{BranchSpecialCase, "Military infantry soldier."}, true
	}

	switch {
	case strings.Contains(es, "tiangong"):
		return SceneOutcome{BranchSpecialCase, "Chinese space station Tiangong."}, true
	case strings.Contains(es, "space station") && (strings.Contains(es, "china") || strings.Contains(es, "chinese")):
		return SceneOutcome{BranchSpecialCase, "Chinese space station."}, true
	case strings.Contains(es, "space station") && strings.Contains(es, "international"):
		return SceneOutcome{BranchSpecialCase, "International Space Station."}, true
	case strings.Contains(es, "space station"):
		return SceneOutcome{BranchSpecialCase, "Space station."}, true
	}

	return SceneOutcome{}, false
}

// scrapedDescription は一致ページ上位2件からスクレイピングした候補を評価します。
// ドメイン除外と関連性チェックはスクレイパー側の責務で、ここでは品質
// フィルタと最低語数のみ検証します。スクレイパー未設定時は何もしません。
func (u *AnalyzeUsecase) scrapedDescription(ctx context.Context, ann *entity.Annotations) (string, bool) {
	if u.scraper == nil {
		return "", false
	}

	for _, page := range capPages(ann.Web.MatchingPages, 2) {
		pageURL := strings.TrimSpace(page.URL)
		if pageURL == "" {
			continue
		}

		desc, err := u.scraper.ScrapeDescription(ctx, pageURL, ann.Labels)
		if err != nil {
			slog.Debug("ページのスクレイピングに失敗しました", "url", pageURL, "error", err)
			continue
		}
		if desc == "" || !IsGoodDescription(desc) {
			continue
		}
		if len(strings.Fields(desc)) >= 3 {
			return desc, true
		}
	}
	return "", false
}

func capPages(pages []entity.MatchingPage, n int) []entity.MatchingPage {
	if len(pages) > n {
		return pages[:n]
	}
	return pages
}
