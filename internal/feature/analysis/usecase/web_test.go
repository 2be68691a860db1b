package usecase

import (
	"context"
	"errors"
	"testing"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// mockScraper はテスト用のPageTextScraperモック実装です。
type mockScraper struct {
	scrapeFn func(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error)
}

func (m *mockScraper) ScrapeDescription(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error) {
	if m.scrapeFn != nil {
		return m.scrapeFn(ctx, pageURL, labels)
	}
	return "", nil
}

// TestWebDescription_BestGuessFirst はベストゲスラベルが最優先で採用されることを検証します。
func TestWebDescription_BestGuessFirst(t *testing.T) {
	t.Parallel()

	u := NewAnalyzeUsecase(nil, nil, nil)
	ann := &entity.Annotations{
		Web: entity.WebContext{
			BestGuessLabels: []string{"russian military submarine surfacing"},
			WebEntities:     []entity.ScoredLabel{{Text: "Tiangong", Confidence: 0.9}},
		},
	}

	outcome, ok := u.webDescription(context.Background(), ann)
	if !ok {
		t.Fatal("expected a web description")
	}
	if outcome.Branch != BranchWebShortcut {
		t.Errorf("branch = %q, want %q", outcome.Branch, BranchWebShortcut)
	}
	if outcome.Description != "Russian military submarine surfacing." {
		t.Errorf("description = %q", outcome.Description)
	}
}

// TestWebDescription_RejectedGuessFallsThrough は品質フィルタで棄却されたベストゲスが
// 後段のソースへフォールスルーすることを検証します。
func TestWebDescription_RejectedGuessFallsThrough(t *testing.T) {
	t.Parallel()

	u := NewAnalyzeUsecase(nil, nil, nil)
	ann := &entity.Annotations{
		Web: entity.WebContext{
			BestGuessLabels: []string{"pickup truck"}, // 汎用語として棄却される
			WebEntities: []entity.ScoredLabel{
				{Text: "Russian naval exercise in Baltic", Confidence: 0.9},
			},
		},
	}

	outcome, ok := u.webDescription(context.Background(), ann)
	if !ok {
		t.Fatal("expected a web description")
	}
	if outcome.Description != "Russian naval exercise in Baltic." {
		t.Errorf("description = %q", outcome.Description)
	}
}

// TestWebDescription_NoCandidates は採用できる候補がない場合にok=falseとなることを検証します。
func TestWebDescription_NoCandidates(t *testing.T) {
	t.Parallel()

	u := NewAnalyzeUsecase(nil, nil, nil)

	if _, ok := u.webDescription(context.Background(), &entity.Annotations{}); ok {
		t.Error("expected no web description for empty annotations")
	}
}

// TestWebDescription_ScrapedCandidate はスクレイピング候補の品質・語数チェックを検証します。
func TestWebDescription_ScrapedCandidate(t *testing.T) {
	t.Parallel()

	t.Run("good scraped description adopted", func(t *testing.T) {
		t.Parallel()

		scraper := &mockScraper{
			scrapeFn: func(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error) {
				return "Russian warship transits Bosphorus strait", nil
			},
		}
		u := NewAnalyzeUsecase(nil, scraper, nil)
		ann := &entity.Annotations{
			Web: entity.WebContext{
				MatchingPages: []entity.MatchingPage{{URL: "https://example.com/a"}},
			},
		}

		outcome, ok := u.webDescription(context.Background(), ann)
		if !ok {
			t.Fatal("expected a web description")
		}
		if outcome.Description != "Russian warship transits Bosphorus strait" {
			t.Errorf("description = %q", outcome.Description)
		}
	})

	t.Run("scrape error skipped silently", func(t *testing.T) {
		t.Parallel()

		scraper := &mockScraper{
			scrapeFn: func(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		u := NewAnalyzeUsecase(nil, scraper, nil)
		ann := &entity.Annotations{
			Web: entity.WebContext{
				MatchingPages: []entity.MatchingPage{{URL: "https://example.com/a"}},
			},
		}

		if _, ok := u.webDescription(context.Background(), ann); ok {
			t.Error("expected no web description when scraping fails")
		}
	})

	t.Run("nil scraper skips scraping stage", func(t *testing.T) {
		t.Parallel()

		u := NewAnalyzeUsecase(nil, nil, nil)
		ann := &entity.Annotations{
			Web: entity.WebContext{
				MatchingPages: []entity.MatchingPage{{URL: "https://example.com/a"}},
			},
		}

		if _, ok := u.webDescription(context.Background(), ann); ok {
			t.Error("expected no web description with nil scraper and no titles")
		}
	})
}

// TestWebDescription_PageTitleLastResort はページタイトルが最後の候補ソースであることを検証します。
func TestWebDescription_PageTitleLastResort(t *testing.T) {
	t.Parallel()

	u := NewAnalyzeUsecase(nil, nil, nil)
	ann := &entity.Annotations{
		Web: entity.WebContext{
			MatchingPages: []entity.MatchingPage{
				{Title: "Free stock images download"},                   // スキップ語を含む
				{Title: "Military convoy spotted near border crossing"}, // 採用される
			},
		},
	}

	outcome, ok := u.webDescription(context.Background(), ann)
	if !ok {
		t.Fatal("expected a web description")
	}
	if outcome.Description != "Military convoy spotted near border crossing." {
		t.Errorf("description = %q", outcome.Description)
	}
}

// TestSpecialEntityCase は固定のエンティティ組み合わせルールを検証します。
func TestSpecialEntityCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		labels   []entity.ScoredLabel
		entities []entity.ScoredLabel
		want     string
		wantOK   bool
	}{
		{
			name:     "food label with colombia entity",
			labels:   []entity.ScoredLabel{{Text: "Food", Confidence: 0.9}},
			entities: []entity.ScoredLabel{{Text: "Colombia", Confidence: 0.8}},
			want:     "Suspected contraband or illegal substance.",
			wantOK:   true,
		},
		{
			name:     "russian submarine",
			entities: []entity.ScoredLabel{{Text: "Submarine", Confidence: 0.9}, {Text: "Russia", Confidence: 0.8}},
			want:     "Russian military submarine.",
			wantOK:   true,
		},
		{
			name:     "soldier and infantry",
			entities: []entity.ScoredLabel{{Text: "Soldier", Confidence: 0.9}, {Text: "Infantry", Confidence: 0.8}},
			want:     "Military infantry soldier.",
			wantOK:   true,
		},
		{
			name:     "tiangong station",
			entities: []entity.ScoredLabel{{Text: "Tiangong space station", Confidence: 0.9}},
			want:     "Chinese space station Tiangong.",
			wantOK:   true,
		},
		{
			name:     "international space station",
			entities: []entity.ScoredLabel{{Text: "International space station", Confidence: 0.9}},
			want:     "International Space Station.",
			wantOK:   true,
		},
		{
			name:     "no combination",
			entities: []entity.ScoredLabel{{Text: "Landscape", Confidence: 0.9}},
			wantOK:   false,
		},
		{
			name:   "empty entities",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome, ok := specialEntityCase(tt.labels, tt.entities)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (description %q)", ok, tt.wantOK, outcome.Description)
			}
			if ok {
				if outcome.Branch != BranchSpecialCase {
					t.Errorf("branch = %q, want %q", outcome.Branch, BranchSpecialCase)
				}
				if outcome.Description != tt.want {
					t.Errorf("description = %q, want %q", outcome.Description, tt.want)
				}
			}
		})
	}
}
