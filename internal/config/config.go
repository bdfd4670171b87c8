// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// セッション設定
	SessionSecret string // デモ用セッションクッキーの署名鍵

	// ログインサブシステム設定
	DBPath      string // ユーザーストア（SQLite）のファイルパス
	TemplateDir string // login.html / welcome.html の配置ディレクトリ

	// アップロードデモ設定
	UploadDir     string // アップロードファイルの保存先
	MaxUploadSize int64  // 単一ファイルの最大サイズ（バイト）

	// 再帰呼び出しデモ設定
	SelfBaseURL string // 自分自身を呼び出す際のベースURL
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// セッション設定
		SessionSecret: getEnv("SESSION_SECRET", ""),

		// ログインサブシステム設定
		DBPath:      getEnv("DB_PATH", "./www/login/users.db"),
		TemplateDir: getEnv("TEMPLATE_DIR", "./www/login/html"),

		// アップロードデモ設定
		UploadDir:     getEnv("UPLOAD_DIR", "./upload"),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 104857600), // 100MB

		// 再帰呼び出しデモ設定
		SelfBaseURL: getEnv("SELF_BASE_URL", "http://localhost:8080/cgi/index"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発では署名鍵は任意
	// 本番環境では厳格にチェックする想定
	if c.GinMode == "release" {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required in release mode")
		}
		if c.TemplateDir == "" {
			return fmt.Errorf("TEMPLATE_DIR is required in release mode")
		}
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt64 は環境変数を64ビット整数として取得します。
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
