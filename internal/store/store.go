// Package store はユーザーレコードの永続化（SQLite）を提供します。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound は条件に一致するレコードが存在しない場合に返されます。
var ErrNotFound = errors.New("store: record not found")

const createdAtLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Identity は登録済みユーザー1件を表します。
// id はアカウント識別子であると同時にセッション識別子としても使われます。
type Identity struct {
	ID        string
	Username  string
	Password  string
	CreatedAt time.Time
}

// Store はSQLiteファイルを背後に持つユーザーストアです。
// プロセス起動時に一度だけ開き、各コンポーネントへ渡して使います。
type Store struct {
	db *sql.DB
}

// Open はユーザーストアを開き、スキーマを保証します。
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	// 保存先ディレクトリがなければ作成する
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// 書き込みの直列化はSQLite側のロックに委ねる
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close はストアを閉じます。
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema は users テーブルの存在を保証します。何度呼んでも安全です。
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// FindByCredentials は (username, password) の完全一致でレコードを検索します。
// 一致がなければ ErrNotFound を返します。
func (s *Store) FindByCredentials(ctx context.Context, username, password string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, created_at FROM users WHERE username = ? AND password = ?`,
		username, password)
	return scanIdentity(row)
}

// FindByID は主キーでレコードを検索します。一致がなければ ErrNotFound を返します。
func (s *Store) FindByID(ctx context.Context, id string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, created_at FROM users WHERE id = ?`, id)
	return scanIdentity(row)
}

// Insert は新しいレコードを追加します。created_at はDB側のデフォルトに任せます。
func (s *Store) Insert(ctx context.Context, id, username, password string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password) VALUES (?, ?, ?)`,
		id, username, password); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var identity Identity
	var createdAt string
	err := row.Scan(&identity.ID, &identity.Username, &identity.Password, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if t, parseErr := time.Parse(createdAtLayout, createdAt); parseErr == nil {
		identity.CreatedAt = t.UTC()
	}
	return &identity, nil
}
