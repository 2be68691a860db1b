package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"imageclass_backend/internal/shared/ratelimiter"

	"github.com/karrick/godirwalk"
)

// imageExtensions はバッチ処理の対象となる画像拡張子です。
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
}

// BatchReport はディレクトリ一括処理の結果サマリです。
type BatchReport struct {
	Processed int // 分析・保存に成功した件数
	Skipped   int // 処理済みのためスキップした件数
	Failed    int // 読み込みまたは保存に失敗した件数
}

// BatchUsecase はディレクトリ内の画像を一括で分析するユースケースです。
// アノテーションAPIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
type BatchUsecase struct {
	analyzer *AnalyzeUsecase
	limiter  ratelimiter.RateLimiterInterface
}

// NewBatchUsecase は新しいBatchUsecaseを作成します。
func NewBatchUsecase(analyzer *AnalyzeUsecase, limiter ratelimiter.RateLimiterInterface) *BatchUsecase {
	return &BatchUsecase{analyzer: analyzer, limiter: limiter}
}

// ProcessDirectory は指定ディレクトリを再帰的に走査し、未処理の画像を
// 分析してストアに保存します。個別画像の失敗は記録して処理を継続します。
func (b *BatchUsecase) ProcessDirectory(ctx context.Context, dir string) (*BatchReport, error) {
	processed, err := b.analyzer.repo.ProcessedFilenames(ctx)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}
			if de.IsDir() {
				return nil
			}
			if imageExtensions[strings.ToLower(filepath.Ext(path))] {
				paths = append(paths, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	report := &BatchReport{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		filename := filepath.Base(path)
		if processed[filename] {
			report.Skipped++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("画像の読み込みに失敗しました", "path", path, "error", err)
			report.Failed++
			continue
		}

		b.limiter.WaitIfNeeded()

		if _, err := b.analyzer.AnalyzeAndStore(ctx, filename, data); err != nil {
			slog.Error("分析結果の保存に失敗しました", "filename", filename, "error", err)
			report.Failed++
			continue
		}
		report.Processed++
	}

	slog.Info("バッチ処理が完了しました",
		"dir", dir,
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}
