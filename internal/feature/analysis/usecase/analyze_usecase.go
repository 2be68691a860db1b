package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"imageclass_backend/internal/feature/analysis/domain/entity"
)

// ImageAnnotator は画像アノテーションサービスを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ImageAnnotator interface {
	// Annotate は画像バイト列をアノテーションサービスに送信し、
	// 正規化されたアノテーションを返します。サービス呼び出しの失敗は
	// ErrServiceUnavailableでラップされます。
	Annotate(ctx context.Context, imageData []byte) (*entity.Annotations, error)
}

// PageTextScraper は一致ページからの記述候補取得を抽象化します。
// 実装は動画ホスティングドメインの除外と、渡されたラベルに対する
// 関連性チェックを自身の責務として行います。
type PageTextScraper interface {
	// ScrapeDescription は指定URLから記述候補を取得します。
	// 候補が得られない場合は空文字列を返します。
	ScrapeDescription(ctx context.Context, pageURL string, labels []entity.ScoredLabel) (string, error)
}

// MetadataRepository は分析結果の永続化層を抽象化します。
type MetadataRepository interface {
	// Upsert はファイル名をキーに分析結果を保存します。
	// 既存レコードがある場合は可変カラムを更新します。
	Upsert(ctx context.Context, result *entity.AnalysisResult) error

	// FindByFilename は指定ファイル名の分析結果を取得します。
	// 存在しない場合はErrImageNotFoundを返します。
	FindByFilename(ctx context.Context, filename string) (*entity.AnalysisResult, error)

	// ProcessedFilenames は処理済みファイル名の集合を返します。
	ProcessedFilenames(ctx context.Context) (map[string]bool, error)

	// Search は検索語に一致する分析結果を関連度順に返します。
	Search(ctx context.Context, term string) ([]entity.AnalysisResult, error)

	// CountryStats は国別の分析件数を返します。
	CountryStats(ctx context.Context) ([]entity.CountryCount, error)
}

// AnalyzeUsecase は画像分類のオーケストレーターです。アノテーション取得、
// エンティティ抽出、記述合成、キーワード生成を統合し、常に整形済みの
// AnalysisResultを返します（エラーを呼び出し元に伝播させません）。
type AnalyzeUsecase struct {
	annotator ImageAnnotator
	scraper   PageTextScraper
	repo      MetadataRepository
}

// NewAnalyzeUsecase はAnalyzeUsecaseの新しいインスタンスを生成します。
// scraperはnil可で、その場合スクレイピング段階はスキップされます。
func NewAnalyzeUsecase(annotator ImageAnnotator, scraper PageTextScraper, repo MetadataRepository) *AnalyzeUsecase {
	return &AnalyzeUsecase{
		annotator: annotator,
		scraper:   scraper,
		repo:      repo,
	}
}

// AnalyzeImage は1枚の画像を分析します。アノテーションサービスの失敗時は
// ファイル名ヒューリスティックによる劣化結果を返し、エラーは返しません。
func (u *AnalyzeUsecase) AnalyzeImage(ctx context.Context, filename string, imageData []byte) *entity.AnalysisResult {
	ann, err := u.annotator.Annotate(ctx, imageData)
	if err != nil {
		slog.Warn("アノテーションサービスの呼び出しに失敗しました。フォールバック分析に切り替えます",
			"filename", filename, "error", err)
		return fallbackResult(filename)
	}

	entities := ExtractEntities(ann)
	extractedText := FilterExtractedText(ann)

	outcome := u.describe(ctx, ann)

	country := ""
	if len(entities.Countries) > 0 {
		country = entities.Countries[0]
	}

	return &entity.AnalysisResult{
		Filename:      filename,
		Description:   outcome.Description,
		Country:       country,
		Keywords:      SynthesizeKeywords(entities, extractedText, ann.Labels),
		People:        entities.People,
		Locations:     entities.Locations,
		Organizations: entities.Organizations,
		Objects:       entities.Objects,
		ExtractedText: extractedText,
		Confidence:    ComputeConfidence(ann),
		SourceType:    entity.SourceVisionAPI,
	}
}

// AnalyzeAndStore は画像を分析し、結果をストアにupsertします。
func (u *AnalyzeUsecase) AnalyzeAndStore(ctx context.Context, filename string, imageData []byte) (*entity.AnalysisResult, error) {
	result := u.AnalyzeImage(ctx, filename, imageData)
	if err := u.repo.Upsert(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Search は検索語に一致する分析結果を返します。
func (u *AnalyzeUsecase) Search(ctx context.Context, term string) ([]entity.AnalysisResult, error) {
	return u.repo.Search(ctx, term)
}

// FindByFilename は指定ファイル名の分析結果を取得します。
func (u *AnalyzeUsecase) FindByFilename(ctx context.Context, filename string) (*entity.AnalysisResult, error) {
	return u.repo.FindByFilename(ctx, filename)
}

// CountryStats は国別の分析件数を返します。
func (u *AnalyzeUsecase) CountryStats(ctx context.Context) ([]entity.CountryCount, error) {
	return u.repo.CountryStats(ctx)
}

// describe は記述合成の全段階を統合します。Web候補 → 特殊ケース →
// シーンカスケードの順で評価し、必ず非空の結果を返します。
func (u *AnalyzeUsecase) describe(ctx context.Context, ann *entity.Annotations) SceneOutcome {
	if outcome, ok := u.webDescription(ctx, ann); ok {
		return outcome
	}

	// 既知ブランドの特殊ケース
	if strings.Contains(strings.ToLower(ann.FullText()), "starlink") {
		return SceneOutcome{BranchSpecialCase, "Starlink satellite communications equipment."}
	}

	return ClassifyScene(ann)
}

// ComputeConfidence は上位5ラベルの平均信頼度に装備検出ボーナスを加えた
// 総合信頼度を返します（上限1.0）。ラベルがない場合は0.0です。
func ComputeConfidence(ann *entity.Annotations) float64 {
	if len(ann.Labels) == 0 {
		return 0.0
	}

	top := ann.Labels
	if len(top) > 5 {
		top = top[:5]
	}
	sum := 0.0
	for _, l := range top {
		sum += l.Confidence
	}
	confidence := sum / float64(len(top))

	if DetectEquipment(ann) {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// fallbackFilenameTerms はファイル名ヒューリスティックの判定語です。
var fallbackFilenameTerms = []string{"missile", "qiam", "shahab", "sejjil"}

// fallbackResult はアノテーションサービス利用不可時の劣化結果を構築します。
// ファイル名にミサイル関連語が含まれる場合のみ内容のある結果になります。
func fallbackResult(filename string) *entity.AnalysisResult {
	base := strings.ToLower(filepath.Base(filename))

	if containsAny(base, fallbackFilenameTerms) {
		return &entity.AnalysisResult{
			Filename:    filepath.Base(filename),
			Description: "Military equipment image featuring missiles.",
			Keywords:    []string{"missile"},
			Confidence:  0.6,
			SourceType:  entity.SourceFilenameHeuristic,
		}
	}

	return &entity.AnalysisResult{
		Filename:    filepath.Base(filename),
		Description: "Military or defense-related image.",
		Keywords:    []string{},
		Confidence:  0.3,
		SourceType:  entity.SourceFallback,
	}
}
