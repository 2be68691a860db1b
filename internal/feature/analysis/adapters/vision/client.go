// Package vision はGoogle Cloud Vision APIを使用した画像アノテーションクライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"imageclass_backend/internal/feature/analysis/domain/entity"
	"imageclass_backend/internal/feature/analysis/usecase"
)

const (
	// defaultMaxResults はWeb検出以外の各機能の最大結果数です。
	defaultMaxResults = 50
	// webMaxResults はWeb検出の最大結果数です。
	webMaxResults = 20
)

// VisionAnnotator はGoogle Cloud Vision APIで画像に包括的なアノテーションを付与します。
// ラベル・オブジェクト・テキスト・顔・ロゴ・ランドマーク・Web検出を1リクエストで要求します。
type VisionAnnotator struct {
	client *gvision.ImageAnnotatorClient
}

// VisionAnnotatorがImageAnnotatorを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnnotator = (*VisionAnnotator)(nil)

// NewVisionAnnotator はADCを使用してVisionAnnotatorの新しいインスタンスを生成します。
func NewVisionAnnotator(ctx context.Context) (*VisionAnnotator, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionAnnotator{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionAnnotator) Close() error {
	return v.client.Close()
}

// Annotate は画像バイト列に全機能のアノテーションを付与し、正規化して返します。
// サービス呼び出しの失敗はErrServiceUnavailableでラップされ、呼び出し側の
// フォールバック分析を発動させます。
func (v *VisionAnnotator) Annotate(ctx context.Context, imageData []byte) (*entity.Annotations, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_TEXT_DETECTION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_FACE_DETECTION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_LOGO_DETECTION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_LANDMARK_DETECTION, MaxResults: defaultMaxResults},
					{Type: visionpb.Feature_WEB_DETECTION, MaxResults: webMaxResults},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrServiceUnavailable, err)
	}

	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty response", usecase.ErrServiceUnavailable)
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("%w: %s", usecase.ErrServiceUnavailable, resp.Responses[0].Error.Message)
	}

	return normalize(resp.Responses[0]), nil
}

// normalize はVision APIレスポンスをドメインモデルに変換します。
// 欠落したサブレコードは空スライスになります。
func normalize(resp *visionpb.AnnotateImageResponse) *entity.Annotations {
	ann := &entity.Annotations{
		Labels:    make([]entity.ScoredLabel, 0, len(resp.LabelAnnotations)),
		Objects:   make([]entity.ScoredObject, 0, len(resp.LocalizedObjectAnnotations)),
		Texts:     make([]string, 0, len(resp.TextAnnotations)),
		Faces:     make([]entity.Face, 0, len(resp.FaceAnnotations)),
		Logos:     make([]entity.ScoredLabel, 0, len(resp.LogoAnnotations)),
		Landmarks: make([]entity.ScoredLabel, 0, len(resp.LandmarkAnnotations)),
	}

	for _, l := range resp.LabelAnnotations {
		ann.Labels = append(ann.Labels, entity.ScoredLabel{Text: l.Description, Confidence: float64(l.Score)})
	}
	for _, o := range resp.LocalizedObjectAnnotations {
		ann.Objects = append(ann.Objects, entity.ScoredObject{Name: o.Name, Confidence: float64(o.Score)})
	}
	for _, t := range resp.TextAnnotations {
		ann.Texts = append(ann.Texts, t.Description)
	}
	// Vision APIは有名人認識フィールドを返さないため、Faceは存在のみを表す
	for range resp.FaceAnnotations {
		ann.Faces = append(ann.Faces, entity.Face{})
	}
	for _, l := range resp.LogoAnnotations {
		ann.Logos = append(ann.Logos, entity.ScoredLabel{Text: l.Description, Confidence: float64(l.Score)})
	}
	for _, l := range resp.LandmarkAnnotations {
		ann.Landmarks = append(ann.Landmarks, entity.ScoredLabel{Text: l.Description, Confidence: float64(l.Score)})
	}

	if web := resp.WebDetection; web != nil {
		for _, g := range web.BestGuessLabels {
			ann.Web.BestGuessLabels = append(ann.Web.BestGuessLabels, g.Label)
		}
		for _, e := range web.WebEntities {
			ann.Web.WebEntities = append(ann.Web.WebEntities, entity.ScoredLabel{
				Text:       e.Description,
				Confidence: float64(e.Score),
			})
		}
		for _, p := range web.PagesWithMatchingImages {
			ann.Web.MatchingPages = append(ann.Web.MatchingPages, entity.MatchingPage{
				Title: p.PageTitle,
				URL:   p.Url,
			})
		}
	}

	return ann
}
