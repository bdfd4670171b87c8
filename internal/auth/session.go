package auth

import (
	"strings"
	"time"
)

const (
	// SessionCookieName はセッションクッキーの名前です。
	// 値にはアカウントIDをそのまま使います（id がセッション識別子を兼ねる設計）。
	SessionCookieName = "id"

	sessionLifetime = 30 * 24 * time.Hour

	// ゲートウェイ契約上の Expires 形式（Day, DD-Mon-YYYY HH:MM:SS GMT）。
	// タイムゾーン表記は常に "GMT" 固定なので、整形後に連結します。
	expiresLayout = "Mon, 02-Jan-2006 15:04:05"

	// クリア用クッキーの失効日時（エポック固定）。
	clearExpires = "Thu, 01 Jan 1970 00:00:00 GMT"
)

// CookieDirective は Set-Cookie ヘッダー1行分の内容です。
type CookieDirective struct {
	Name    string
	Value   string
	Expires string
	Path    string
}

// String はヘッダー値として出力する文字列を返します。
func (d CookieDirective) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteString("=")
	b.WriteString(d.Value)
	if d.Expires != "" {
		b.WriteString("; Expires=")
		b.WriteString(d.Expires)
	}
	if d.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(d.Path)
	}
	return b.String()
}

// Issue は認証成功時に発行するセッションクッキーを作ります。
// 有効期限は発行時刻の30日後です。
func Issue(id string, now time.Time) CookieDirective {
	expires := now.Add(sessionLifetime).UTC()
	return CookieDirective{
		Name:    SessionCookieName,
		Value:   id,
		Expires: expires.Format(expiresLayout) + " GMT",
		Path:    "/",
	}
}

// ClearDirective はログアウト時に発行する失効クッキーを返します。
func ClearDirective() CookieDirective {
	return CookieDirective{
		Name:    SessionCookieName,
		Value:   "",
		Expires: clearExpires,
		Path:    "/",
	}
}

// ResolveSessionID は Cookie ヘッダーからセッションIDを取り出します。
// セミコロン区切りの key=value を走査し、"=" を含まない断片は読み飛ばします。
// 見つからなければ空文字を返します。
func ResolveSessionID(header string) string {
	for _, part := range strings.Split(header, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		if kv[0] == SessionCookieName {
			return kv[1]
		}
	}
	return ""
}
