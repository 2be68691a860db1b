// Package entity はanalysisフィーチャーのドメインモデルを定義します。
package entity

// ScoredLabel は画像全体に付与された意味タグを表します。
type ScoredLabel struct {
	Text       string  // ラベルテキスト
	Confidence float64 // 信頼度スコア（0.0 ~ 1.0）
}

// ScoredObject は画像内で位置特定されたオブジェクトを表します。
// バウンディングボックスは下流で使用しないため保持しません。
type ScoredObject struct {
	Name       string
	Confidence float64
}

// Face は顔検出結果を表します。有名人認識フィールドは任意です。
type Face struct {
	CelebrityName string // 有名人認識の結果（空の場合あり）
	Name          string // 顔に紐づく名前（空の場合あり）
}

// MatchingPage はWeb検出で見つかった、類似画像を含むページを表します。
type MatchingPage struct {
	Title string
	URL   string
}

// WebContext はWeb検出（Google Lens相当）のコンテキスト情報です。
// ベストゲスラベルはサービス自身の最有力解釈で、品質フィルタを
// 通過した場合はルールベース生成より優先されます。
type WebContext struct {
	BestGuessLabels []string
	WebEntities     []ScoredLabel
	MatchingPages   []MatchingPage
}

// Annotations はアノテーションサービスのレスポンスを正規化したものです。
// 欠落したサブレコードは空スライスとして扱います（nilエラーにしない）。
type Annotations struct {
	Labels    []ScoredLabel
	Objects   []ScoredObject
	Texts     []string // テキスト検出結果。先頭要素が全文
	Faces     []Face
	Logos     []ScoredLabel
	Landmarks []ScoredLabel
	Web       WebContext
}

// FullText は検出された全文テキストを返します。未検出時は空文字列です。
func (a *Annotations) FullText() string {
	if len(a.Texts) == 0 {
		return ""
	}
	return a.Texts[0]
}

// ExtractedEntities はエンティティ抽出の結果です。
// 各リストは大文字小文字を区別せずに重複排除されます（リスト間の重複排除は行いません）。
type ExtractedEntities struct {
	People        []string // 最大5件
	Locations     []string // 最大5件
	Organizations []string // 最大5件
	Objects       []string // 最大8件
	Countries     []string // 検出順。先頭が主要国
}
