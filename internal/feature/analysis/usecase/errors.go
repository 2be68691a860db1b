// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrServiceUnavailable はアノテーションサービス呼び出しの失敗
	// （ネットワークエラー、非2xx、不正なレスポンス）を示します。
	// オーケストレーターはこれを捕捉してフォールバック分析に切り替えます。
	ErrServiceUnavailable = errors.New("annotation service unavailable")

	// ErrImageNotFound は対象の画像ファイルが見つからないことを示します。
	ErrImageNotFound = errors.New("image file not found")
)
