package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"imageclass_backend/internal/app/router"
	analysisadapters "imageclass_backend/internal/feature/analysis/adapters"
	"imageclass_backend/internal/feature/analysis/adapters/scraper"
	"imageclass_backend/internal/feature/analysis/adapters/vision"
	analysishandler "imageclass_backend/internal/feature/analysis/transport/handler"
	analysisusecase "imageclass_backend/internal/feature/analysis/usecase"
	authadapters "imageclass_backend/internal/feature/auth/adapters"
	authhandler "imageclass_backend/internal/feature/auth/transport/handler"
	authusecase "imageclass_backend/internal/feature/auth/usecase"
	"imageclass_backend/internal/platform/cache"
	platformdb "imageclass_backend/internal/platform/db"
	platformhttp "imageclass_backend/internal/platform/http"
	jwtmw "imageclass_backend/internal/platform/jwt"
	platformredis "imageclass_backend/internal/platform/redis"
)

func main() {
	// .envは任意（コンテナ環境では環境変数を直接渡す）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found. Using environment variables.")
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Vision APIクライアント（GOOGLE_APPLICATION_CREDENTIALSが必要）
	ctx := context.Background()
	annotator, err := vision.NewVisionAnnotator(ctx)
	if err != nil {
		log.Fatal("failed to create vision client:", err)
	}
	defer func() {
		if err := annotator.Close(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	metadataRepo := analysisadapters.NewMetadataRepository(db)

	// Redisキャッシュでラップ
	cachedMetadataRepo := cache.NewCachingMetadataRepository(rdb, 5*time.Minute, metadataRepo, "images")

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	pageScraper := scraper.NewPageScraper(platformhttp.NewHTTPClient(10 * time.Second))
	analysisUC := analysisusecase.NewAnalyzeUsecase(annotator, pageScraper, cachedMetadataRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)

	// ルータ生成
	router := router.NewRouter(authH, analysisH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
