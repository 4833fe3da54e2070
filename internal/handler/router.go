package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bloodlink/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	TokenVerifier     middleware.TokenVerifier
	MetricsRecorder   middleware.HTTPStatusRecorder

	// メトリクス公開用ハンドラー
	MetricsHandler http.Handler

	// サービス
	DonorService     DonorServiceInterface
	RequestService   RequestServiceInterface
	InventoryService InventoryServiceInterface
	AdminAuth        AdminAuthInterface
	Database         DatabasePinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 公開APIには一般レート制限、登録系エンドポイントには追加の受付レート制限を適用する。
// 管理者ルートはBearerトークン検証で保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}

	donorHandler := NewDonorHandler(deps.DonorService)
	requestHandler := NewRequestHandler(deps.RequestService)
	inventoryHandler := NewInventoryHandler(deps.InventoryService)
	adminHandler := NewAdminHandler(deps.AdminAuth)
	healthHandler := NewHealthHandler(deps.Database)

	adminOnly := middleware.NewAdminMiddleware(deps.TokenVerifier)

	// --- 公開ルート ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/donors", func(r chi.Router) {
			r.Get("/", donorHandler.List)
			// POST /api/donors - ドナー登録（受付専用レート制限を追加）
			r.With(deps.RateLimiter.IntakeMiddleware()).Post("/", donorHandler.Register)

			// 管理者専用
			r.With(adminOnly).Delete("/{id}", donorHandler.Delete)
		})

		r.Route("/api/requests", func(r chi.Router) {
			r.Get("/", requestHandler.List)
			// POST /api/requests - 血液リクエスト受付（受付専用レート制限を追加）
			r.With(deps.RateLimiter.IntakeMiddleware()).Post("/", requestHandler.Submit)

			// 管理者専用
			r.With(adminOnly).Delete("/{id}", requestHandler.Delete)
			r.With(adminOnly).Patch("/{id}/approve", requestHandler.Approve)
		})

		r.Get("/api/inventory", inventoryHandler.Aggregate)
		r.Post("/api/admin/login", adminHandler.Login)
	})

	// --- 監視ルート（レート制限なし） ---
	r.Get("/api/health", healthHandler.Check)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	return r
}
