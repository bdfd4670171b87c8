// Package storage はアップロードファイルの保存先を提供します。
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local はローカルファイルシステムへの保存を実装します。
type Local struct {
	dir string
}

// NewLocal は保存先ディレクトリを指す Local を作成します。
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Save はアップロードされたデータを保存し、実際に保存したファイル名を返します。
// ファイル名はベース名だけを採用し、空白はアンダースコアに置き換えます。
func (l *Local) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("invalid filename")
	}

	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// Path は保存済みファイルのフルパスを返します。
func (l *Local) Path(name string) string {
	return filepath.Join(l.dir, name)
}
