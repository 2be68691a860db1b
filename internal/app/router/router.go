package router

import (
	analysishandler "imageclass_backend/internal/feature/analysis/transport/handler"
	authhandler "imageclass_backend/internal/feature/auth/transport/handler"
	"imageclass_backend/internal/platform/http/handler"
	jwtmw "imageclass_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, analysis *analysishandler.AnalysisHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/v1/images/analyze", analysis.Analyze)
		auth.GET("/v1/images/search", analysis.Search)
		auth.GET("/v1/images/stats/countries", analysis.CountryStats)
		auth.GET("/v1/images/:filename", analysis.Get)
	}

	return r
}
