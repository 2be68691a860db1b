// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"imageclass_backend/internal/api"
	"imageclass_backend/internal/feature/analysis/domain/entity"
	"imageclass_backend/internal/feature/analysis/usecase"
)

// maxUploadSize はアップロード画像の最大サイズです（10MB）。
const maxUploadSize = 10 << 20

// AnalysisUsecase は画像分析・検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	AnalyzeAndStore(ctx context.Context, filename string, imageData []byte) (*entity.AnalysisResult, error)
	FindByFilename(ctx context.Context, filename string) (*entity.AnalysisResult, error)
	Search(ctx context.Context, term string) ([]entity.AnalysisResult, error)
	CountryStats(ctx context.Context) ([]entity.CountryCount, error)
}

// AnalysisHandler は画像分析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Analyze は画像をアップロードして分析し、結果を保存して返します。
//
// エンドポイント: POST /v1/images/analyze
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}
	if file.Size > maxUploadSize {
		slog.Warn("画像ファイルが大きすぎます", "size", file.Size, "remote_addr", c.ClientIP())
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像ファイルは10MB以下にしてください"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}

	// パス要素を除去したファイル名で保存する
	filename := filepath.Base(file.Filename)
	result, err := h.uc.AnalyzeAndStore(c.Request.Context(), filename, imageData)
	if err != nil {
		slog.Error("分析結果の保存に失敗", "error", err, "filename", filename)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "分析結果の保存に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, toResponse(result))
}

// Get は指定ファイル名の分析結果を取得します。
//
// エンドポイント: GET /v1/images/:filename
func (h *AnalysisHandler) Get(c *gin.Context) {
	filename := c.Param("filename")

	result, err := h.uc.FindByFilename(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, usecase.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "指定された画像は見つかりません"})
			return
		}
		slog.Error("分析結果の取得に失敗", "error", err, "filename", filename)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "分析結果の取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, toResponse(result))
}

// Search は分析結果を横断検索します。
//
// エンドポイント: GET /v1/images/search?q=<検索語>
func (h *AnalysisHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "検索語qが必要です"})
		return
	}

	results, err := h.uc.Search(c.Request.Context(), term)
	if err != nil {
		slog.Error("検索に失敗", "error", err, "term", term)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "検索に失敗しました"})
		return
	}

	out := make([]api.AnalysisResponse, 0, len(results))
	for i := range results {
		out = append(out, toResponse(&results[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CountryStats は国別の分析件数を返します。
//
// エンドポイント: GET /v1/images/stats/countries
func (h *AnalysisHandler) CountryStats(c *gin.Context) {
	stats, err := h.uc.CountryStats(c.Request.Context())
	if err != nil {
		slog.Error("国別統計の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "統計の取得に失敗しました"})
		return
	}

	out := make([]api.CountryStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, api.CountryStatResponse{Country: s.Country, Count: s.Count})
	}
	c.JSON(http.StatusOK, out)
}

func toResponse(r *entity.AnalysisResult) api.AnalysisResponse {
	return api.AnalysisResponse{
		Filename:      r.Filename,
		Description:   r.Description,
		Country:       r.Country,
		Keywords:      r.Keywords,
		People:        r.People,
		Locations:     r.Locations,
		Organizations: r.Organizations,
		Objects:       r.Objects,
		ExtractedText: r.ExtractedText,
		Confidence:    r.Confidence,
		SourceType:    string(r.SourceType),
	}
}
