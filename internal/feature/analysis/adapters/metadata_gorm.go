package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"imageclass_backend/internal/feature/analysis/domain/entity"
	"imageclass_backend/internal/feature/analysis/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type metadataGorm struct {
	db *gorm.DB
}

var _ usecase.MetadataRepository = (*metadataGorm)(nil)

// NewMetadataRepository は分析結果のgormリポジトリを生成します。
func NewMetadataRepository(db *gorm.DB) *metadataGorm {
	return &metadataGorm{db: db}
}

// ImageMetadataModel はimage_metadataテーブルのレコードです。
// 配列カラムはJSON文字列として保存します。
type ImageMetadataModel struct {
	ID            uint   `gorm:"primaryKey"`
	Filename      string `gorm:"size:255;not null;uniqueIndex"`
	Description   string `gorm:"type:text;not null"`
	Country       string `gorm:"size:64"`
	Keywords      string `gorm:"type:text"`
	People        string `gorm:"type:text"`
	Locations     string `gorm:"type:text"`
	Organizations string `gorm:"type:text"`
	Objects       string `gorm:"type:text"`
	ExtractedText string `gorm:"type:text"`
	Confidence    float64
	SourceType    string    `gorm:"size:32;not null"`
	ProcessedAt   time.Time `gorm:"not null"`
	Status        string    `gorm:"size:16;not null"`
}

func (ImageMetadataModel) TableName() string {
	return "image_metadata"
}

// statusProcessed は保存済みレコードの固定ステータスです。
const statusProcessed = "processed"

func toModel(e *entity.AnalysisResult) (ImageMetadataModel, error) {
	keywords, err := marshalList(e.Keywords)
	if err != nil {
		return ImageMetadataModel{}, err
	}
	people, err := marshalList(e.People)
	if err != nil {
		return ImageMetadataModel{}, err
	}
	locations, err := marshalList(e.Locations)
	if err != nil {
		return ImageMetadataModel{}, err
	}
	organizations, err := marshalList(e.Organizations)
	if err != nil {
		return ImageMetadataModel{}, err
	}
	objects, err := marshalList(e.Objects)
	if err != nil {
		return ImageMetadataModel{}, err
	}

	return ImageMetadataModel{
		Filename:      e.Filename,
		Description:   e.Description,
		Country:       e.Country,
		Keywords:      keywords,
		People:        people,
		Locations:     locations,
		Organizations: organizations,
		Objects:       objects,
		ExtractedText: e.ExtractedText,
		Confidence:    e.Confidence,
		SourceType:    string(e.SourceType),
		ProcessedAt:   time.Now().UTC(),
		Status:        statusProcessed,
	}, nil
}

func toEntity(m ImageMetadataModel) (entity.AnalysisResult, error) {
	keywords, err := unmarshalList(m.Keywords)
	if err != nil {
		return entity.AnalysisResult{}, err
	}
	people, err := unmarshalList(m.People)
	if err != nil {
		return entity.AnalysisResult{}, err
	}
	locations, err := unmarshalList(m.Locations)
	if err != nil {
		return entity.AnalysisResult{}, err
	}
	organizations, err := unmarshalList(m.Organizations)
	if err != nil {
		return entity.AnalysisResult{}, err
	}
	objects, err := unmarshalList(m.Objects)
	if err != nil {
		return entity.AnalysisResult{}, err
	}

	return entity.AnalysisResult{
		Filename:      m.Filename,
		Description:   m.Description,
		Country:       m.Country,
		Keywords:      keywords,
		People:        people,
		Locations:     locations,
		Organizations: organizations,
		Objects:       objects,
		ExtractedText: m.ExtractedText,
		Confidence:    m.Confidence,
		SourceType:    entity.SourceType(m.SourceType),
	}, nil
}

// Upsert はファイル名をキーに分析結果を保存します。
// 既存レコードがある場合は可変カラムをすべて更新します。
func (r *metadataGorm) Upsert(ctx context.Context, result *entity.AnalysisResult) error {
	m, err := toModel(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "filename"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "country", "keywords", "people", "locations",
			"organizations", "objects", "extracted_text", "confidence",
			"source_type", "processed_at", "status",
		}),
	}).Create(&m).Error
}

// FindByFilename は指定ファイル名の分析結果を取得します。
func (r *metadataGorm) FindByFilename(ctx context.Context, filename string) (*entity.AnalysisResult, error) {
	var m ImageMetadataModel
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	e, err := toEntity(m)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ProcessedFilenames は処理済みファイル名の集合を返します。
func (r *metadataGorm) ProcessedFilenames(ctx context.Context) (map[string]bool, error) {
	var filenames []string
	if err := r.db.WithContext(ctx).
		Model(&ImageMetadataModel{}).
		Pluck("filename", &filenames).Error; err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(filenames))
	for _, f := range filenames {
		set[f] = true
	}
	return set, nil
}

// Search は検索語に一致する分析結果を返します。
// 一致箇所の優先度は説明文 > キーワード > 国 > ファイル名で、同順位は新しい順です。
func (r *metadataGorm) Search(ctx context.Context, term string) ([]entity.AnalysisResult, error) {
	pattern := "%" + term + "%"

	var rows []ImageMetadataModel
	err := r.db.WithContext(ctx).
		Where("description LIKE ? OR keywords LIKE ? OR country LIKE ? OR filename LIKE ?",
			pattern, pattern, pattern, pattern).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "CASE WHEN description LIKE ? THEN 0 WHEN keywords LIKE ? THEN 1 WHEN country LIKE ? THEN 2 ELSE 3 END, processed_at DESC",
				Vars:               []interface{}{pattern, pattern, pattern},
				WithoutParentheses: true,
			},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.AnalysisResult, 0, len(rows))
	for _, m := range rows {
		e, err := toEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// CountryStats は国別の分析件数を件数の多い順に返します。
func (r *metadataGorm) CountryStats(ctx context.Context) ([]entity.CountryCount, error) {
	var stats []entity.CountryCount
	err := r.db.WithContext(ctx).
		Model(&ImageMetadataModel{}).
		Select("country, COUNT(*) AS count").
		Where("country <> ''").
		Group("country").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func marshalList(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil, err
	}
	return vals, nil
}
