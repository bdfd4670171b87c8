// Package main はゲートウェイデモサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/login-gateway/internal/auth"
	"github.com/yourusername/login-gateway/internal/config"
	"github.com/yourusername/login-gateway/internal/demo"
	"github.com/yourusername/login-gateway/internal/storage"
	"github.com/yourusername/login-gateway/internal/store"
	"github.com/yourusername/login-gateway/internal/view"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// ユーザーストアはプロセスで一度だけ開く（リクエストごとには開き直さない）
	userStore, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer func() {
		if err := userStore.Close(); err != nil {
			log.Printf("Failed to close user store: %v", err)
		}
	}()

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// 訪問カウンターデモ用のセッションストア
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("demo_session", sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, userStore)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting gateway server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "login-gateway",
		"version": "0.1.0",
	})
}

// setupRoutes はログインサブシステムとデモハンドラーの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, userStore *store.Store) {
	router.GET("/health", handleHealth)

	// ログイン・ログアウト
	views := view.NewRenderer(cfg.TemplateDir)
	authManager := auth.NewManager(userStore, views)
	router.GET("/login", authManager.Login)
	router.POST("/login", authManager.Login)
	router.GET("/logout", authManager.Logout)

	// ゲートウェイ動作確認用のデモ
	uploadStore := storage.NewLocal(cfg.UploadDir)
	cgi := router.Group("/cgi")
	{
		cgi.GET("/counter", demo.VisitCounter)
		cgi.GET("/cookies", demo.CookieCounter)
		cgi.GET("/env", demo.EnvDump)
		cgi.POST("/upload", demo.UploadHandler(uploadStore, cfg.MaxUploadSize))
		cgi.GET("/index", demo.RecurseHandler(cfg.SelfBaseURL, nil))
	}
}
