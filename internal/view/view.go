// Package view はテンプレートファイルの読み込みとプレースホルダー置換を提供します。
package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const currentTimeLayout = "2006-01-02 15:04:05"

// Renderer はテンプレートディレクトリを指すレンダラーです。
// テンプレートはリクエストごとにディスクから読み直します。
type Renderer struct {
	dir string
}

// NewRenderer は Renderer を作成します。
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// LoginForm はログインフォーム画面を描画します。
// {current_time} を現在時刻（UTC）で置換します。
func (r *Renderer) LoginForm(now time.Time) (string, error) {
	html, err := r.read("login.html")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(html, "{current_time}", now.UTC().Format(currentTimeLayout)), nil
}

// Welcome はウェルカム画面を描画します。
// {username} と {password} をそのまま置換します。エスケープは行いません
// （置換値がマークアップとして解釈されるのは既知のリスクで、仕様として保持）。
func (r *Renderer) Welcome(username, password string) (string, error) {
	html, err := r.read("welcome.html")
	if err != nil {
		return "", err
	}
	html = strings.ReplaceAll(html, "{username}", username)
	html = strings.ReplaceAll(html, "{password}", password)
	return html, nil
}

func (r *Renderer) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(data), nil
}

// ErrorPage は1行メッセージだけを含む汎用エラーページを返します。
func ErrorPage(message string) string {
	return fmt.Sprintf("<html><body><h1>Error: %s</h1></body></html>\n", message)
}
