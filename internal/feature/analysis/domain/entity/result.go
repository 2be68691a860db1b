package entity

// SourceType は分析結果の生成元を表します。
type SourceType string

const (
	// SourceVisionAPI はVision APIによる完全な分析結果を示します。
	SourceVisionAPI SourceType = "vision_api"
	// SourceFilenameHeuristic はファイル名ヒューリスティックによる劣化結果を示します。
	SourceFilenameHeuristic SourceType = "filename_heuristic"
	// SourceFallback はヒューリスティックも一致しなかった汎用フォールバック結果を示します。
	SourceFallback SourceType = "fallback"
)

// AnalysisResult は1枚の画像に対する最終的な分析結果です。
// オーケストレーターが画像ごとに一度だけ構築し、以後変更されません。
// Description は常に空でなく、ピリオドで終端された1文です。
type AnalysisResult struct {
	Filename      string
	Description   string
	Country       string // 未検出時は空
	Keywords      []string
	People        []string
	Locations     []string
	Organizations []string
	Objects       []string
	ExtractedText string
	Confidence    float64
	SourceType    SourceType
}

// CountryCount は国別の分析件数です（統計エンドポイント用）。
type CountryCount struct {
	Country string
	Count   int64
}
