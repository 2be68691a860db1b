package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	analysisadapters "imageclass_backend/internal/feature/analysis/adapters"
	"imageclass_backend/internal/feature/analysis/adapters/scraper"
	"imageclass_backend/internal/feature/analysis/adapters/vision"
	analysisusecase "imageclass_backend/internal/feature/analysis/usecase"
	platformdb "imageclass_backend/internal/platform/db"
	platformhttp "imageclass_backend/internal/platform/http"
	"imageclass_backend/internal/shared/ratelimiter"
)

func main() {
	dir := flag.String("dir", "images", "分析対象の画像ディレクトリ")
	timeout := flag.Duration("timeout", 60*time.Minute, "バッチ全体のタイムアウト")
	rpm := flag.Int("rpm", 30, "1分あたりのアノテーションAPI呼び出し上限")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found. Using environment variables.")
	}

	db := platformdb.OpenDB()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	annotator, err := vision.NewVisionAnnotator(ctx)
	if err != nil {
		log.Fatal("failed to create vision client:", err)
	}
	defer func() {
		if err := annotator.Close(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()

	metadataRepo := analysisadapters.NewMetadataRepository(db)
	pageScraper := scraper.NewPageScraper(platformhttp.NewHTTPClient(10 * time.Second))
	analyzer := analysisusecase.NewAnalyzeUsecase(annotator, pageScraper, metadataRepo)

	limiter := ratelimiter.NewRateLimiter(*rpm, time.Minute)
	batch := analysisusecase.NewBatchUsecase(analyzer, limiter)

	report, err := batch.ProcessDirectory(ctx, *dir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("classify ok: processed=%d skipped=%d failed=%d",
		report.Processed, report.Skipped, report.Failed)
}
