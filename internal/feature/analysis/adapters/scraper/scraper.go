// Package scraper は一致ページから画像の記述候補を取得するスクレイパーを提供します。
package scraper

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
	"imageclass_backend/internal/feature/analysis/usecase"
)

const (
	// maxBodySize は読み込むレスポンスボディの上限です。
	maxBodySize = 1 << 20
	// userAgent はニュースサイトにブロックされにくいブラウザ相当のUAです。
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// metaDescriptionLimit はメタ記述の最大文字数です。
	metaDescriptionLimit = 150
)

// videoDomains はスクレイピング対象から除外する動画ホスティングドメインです。
var videoDomains = []string{"youtube", "youtu.be", "vimeo", "dailymotion", "tiktok"}

// relevantKeywords は記述候補の関連性チェックに使う報道・軍事系の語です。
var relevantKeywords = []string{
	"submarine", "military", "soldier", "ship", "navy", "army", "aircraft",
	"plane", "helicopter", "weapon", "equipment", "flag", "political", "president",
	"space", "satellite", "station", "astronaut", "rocket", "missile",
}

// creditTerms は企業名・撮影クレジット系の棄却語です。
var creditTerms = []string{
	"productions", "production", "company", "corporation", "ltd", "llc", "inc",
	"photography", "photo", "image", "picture", "stock", "shutterstock", "getty",
}

var (
	figcaptionPattern = regexp.MustCompile(`(?is)<figcaption[^>]*>(.*?)</figcaption>`)
	imgAltPattern     = regexp.MustCompile(`(?is)<img[^>]*\salt\s*=\s*"([^"]+)"`)
	metaDescPattern   = regexp.MustCompile(`(?is)<meta[^>]+name\s*=\s*"description"[^>]+content\s*=\s*"([^"]*)"`)
	ogDescPattern     = regexp.MustCompile(`(?is)<meta[^>]+property\s*=\s*"og:description"[^>]+content\s*=\s*"([^"]*)"`)
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
)

// PageScraper は一致ページのHTMLからキャプション・altテキスト・メタ記述を抽出します。
// 動画ホスティングドメインの除外と、画像ラベルに対する関連性チェックを行います。
type PageScraper struct {
	client *http.Client
}

// PageScraperがPageTextScraperを実装していることをコンパイル時に検証します。
var _ usecase.PageTextScraper = (*PageScraper)(nil)

// NewPageScraper はPageScraperの新しいインスタンスを生成します。
func NewPageScraper(client *http.Client) *PageScraper {
	return &PageScraper{client: client}
}

// ScrapeDescription は指定ページから記述候補を取得します。
// 除外ドメイン・候補なし・関連性不足の場合は空文字列を返します（エラーにしない）。
func (s *PageScraper) ScrapeDescription(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url: %w", err)
	}

	domain := strings.ToLower(parsed.Host)
	for _, skip := range videoDomains {
		if strings.Contains(domain, skip) {
			return "", nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	candidate := extractDescription(string(body))
	if candidate == "" {
		return "", nil
	}
	if !isRelevant(candidate, labels) {
		return "", nil
	}
	return candidate, nil
}

// extractDescription はHTMLから記述候補を優先順位つきで抽出します。
// figcaption → 画像altテキスト → メタ記述 → OpenGraph記述の順です。
func extractDescription(page string) string {
	for _, m := range figcaptionPattern.FindAllStringSubmatch(page, 5) {
		text := cleanFragment(m[1])
		if len(text) > 15 {
			return text
		}
	}

	for _, m := range imgAltPattern.FindAllStringSubmatch(page, 10) {
		text := cleanFragment(m[1])
		if len(text) > 15 && !strings.HasPrefix(text, "http") && !strings.HasPrefix(text, "data:") {
			return text
		}
	}

	if m := metaDescPattern.FindStringSubmatch(page); m != nil {
		if text := cleanFragment(m[1]); len(text) > 30 {
			return truncate(text, metaDescriptionLimit)
		}
	}
	if m := ogDescPattern.FindStringSubmatch(page); m != nil {
		if text := cleanFragment(m[1]); len(text) > 30 {
			return truncate(text, metaDescriptionLimit)
		}
	}

	return ""
}

// isRelevant は候補が画像の内容に関連しているかを検証します。
// 報道・軍事系キーワードまたは上位5ラベルとの一致を要求し、
// 撮影クレジット系の語を含む候補は棄却します。
func isRelevant(candidate string, labels []entity.ScoredLabel) bool {
	lower := strings.ToLower(candidate)

	for _, term := range creditTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}

	for _, kw := range relevantKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for i, l := range labels {
		if i == 5 {
			break
		}
		if strings.Contains(lower, strings.ToLower(l.Text)) {
			return true
		}
	}
	return false
}

func cleanFragment(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
