package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"imageclass_backend/internal/feature/analysis/adapters"
	"imageclass_backend/internal/feature/auth/domain/entity"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config はデータベース接続設定です。SQLitePathが設定されている場合は
// ローカルのSQLiteを使用し、他のフィールドは無視されます。
type Config struct {
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SQLitePath string
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替え可能にするための型です。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
}

// BuildDSN はPostgreSQL接続用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// ConnectWithRetry は指定されたタイムアウトまで接続をリトライします。
// 起動直後にDBコンテナが未準備のケースに備えます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はデータベース接続を確立します。SQLITE_PATHが設定されている場合は
// ローカルのSQLiteを、それ以外は環境変数のDSNでPostgreSQLを使用します。
// 接続失敗時はプロセスを終了します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	if cfg.SQLitePath != "" {
		db, err := gorm.Open(gsqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("SQLite open failed: %v", err)
		}
		migrate(db)
		return db
	}

	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, opener)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		migrate(db)
	}

	return db
}

func migrate(db *gorm.DB) {
	// マイグレーション（User, ImageMetadata）
	if err := db.AutoMigrate(
		&entity.User{},
		&adapters.ImageMetadataModel{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
}
