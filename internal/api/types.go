// Package api はHTTP APIのリクエスト/レスポンス型を定義します。
// transport層のハンドラー間で共有されるDTOをここに集約します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時にJWTトークンを返すレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest はユーザー登録リクエストです。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest はログインリクエストです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AnalysisResponse は1枚の画像に対する分析結果のレスポンスです。
type AnalysisResponse struct {
	Filename      string   `json:"filename"`
	Description   string   `json:"description"`
	Country       string   `json:"country,omitempty"`
	Keywords      []string `json:"keywords"`
	People        []string `json:"people"`
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations"`
	Objects       []string `json:"objects"`
	ExtractedText string   `json:"extracted_text,omitempty"`
	Confidence    float64  `json:"confidence"`
	SourceType    string   `json:"source_type"`
}

// CountryStatResponse は国別の分析件数です。
type CountryStatResponse struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}
