// Package auth はログインセッションの発行・解決と認証処理を提供します。
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/login-gateway/internal/store"
)

// ErrNoCredentials はフォームに username / password が揃っていない場合に返されます。
// 呼び出し側はクッキーによるセッション解決へフォールバックします。
var ErrNoCredentials = errors.New("auth: no credentials supplied")

// Manager は認証処理とセッション発行・解決をまとめた構造体です。
type Manager struct {
	store *store.Store
	views Renderer
	now   func() time.Time
}

// Renderer はビューの描画を提供します。
type Renderer interface {
	LoginForm(now time.Time) (string, error)
	Welcome(username, password string) (string, error)
}

// NewManager は認証マネージャーを作成します。
func NewManager(st *store.Store, views Renderer) *Manager {
	return &Manager{
		store: st,
		views: views,
		now:   time.Now,
	}
}

// Authenticate は (username, password) の完全一致でユーザーを検索し、
// 一致がなければ新しいIDを発番してレコードを追加します。
// 既存ユーザー名に対する誤ったパスワードも新規登録として扱われる点は
// 観測された仕様のまま保持しています（ログインと登録の区別がない）。
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*store.Identity, bool, error) {
	if username == "" || password == "" {
		return nil, false, ErrNoCredentials
	}

	identity, err := m.store.FindByCredentials(ctx, username, password)
	if err == nil {
		return identity, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	id := uuid.NewString()
	if err := m.store.Insert(ctx, id, username, password); err != nil {
		return nil, false, err
	}

	return &store.Identity{
		ID:       id,
		Username: username,
		Password: password,
	}, true, nil
}
