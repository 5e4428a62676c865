package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/internal/auth"
	"github.com/nao1215/courses/internal/config"
	"github.com/nao1215/courses/pkg/middleware"
	"github.com/nao1215/courses/pkg/pipeline"
	"github.com/nao1215/courses/pkg/validation"
)

// Server はコースサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はSQLiteデータベース接続。
	db *sql.DB
	// repo はコースのリポジトリ。
	repo *SQLiteRepository
}

// NewServer は新しいコースサーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
	sqlDB, err := Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	repo, err := NewSQLiteRepository(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("リポジトリの初期化に失敗: %w", err)
	}

	credentials, err := auth.NewStaticCredentials(auth.DefaultUsername, auth.DefaultPassword)
	if err != nil {
		_ = repo.Close()
		_ = sqlDB.Close()
		return nil, fmt.Errorf("認証情報の初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router: router,
		port:   cfg.Port,
		db:     sqlDB,
		repo:   repo,
	}
	s.setupRoutes(cfg.Token, credentials)

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Close はリポジトリとデータベース接続を解放する。
func (s *Server) Close() error {
	return errors.Join(s.repo.Close(), s.db.Close())
}

// setupRoutes はAPIルーティングを設定する。
// 保護されたエンドポイントは 認証 → 入力検証 → コントローラ の順に実行する。
func (s *Server) setupRoutes(token middleware.TokenConfig, credentials auth.CredentialProvider) {
	v := validation.New()
	rules := requestRules{validator: v}
	login := auth.NewHandler(auth.NewService(credentials, token), v)
	ctl := NewController(s.repo)
	authenticate := middleware.Authenticate(token)

	api := s.router.Group("/api")
	{
		// ログイン（認証不要）
		api.POST("/login", pipeline.Run(login.Login))

		courses := api.Group("/courses")
		{
			// コース作成
			courses.POST("", pipeline.Run(authenticate, validation.Stage(rules.body), ctl.Create))
			// コース一覧取得
			courses.GET("", pipeline.Run(authenticate, validation.Stage(rules.query), ctl.List))
			// コース詳細取得
			courses.GET("/:id", pipeline.Run(authenticate, validation.Stage(rules.id), ctl.Get))
			// コース更新
			courses.PUT("/:id", pipeline.Run(authenticate, validation.Stage(rules.id, rules.body), ctl.Update))
			// コース削除
			courses.DELETE("/:id", pipeline.Run(authenticate, validation.Stage(rules.id), ctl.Delete))
		}
	}

	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	})

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "courses"})
	})
}
