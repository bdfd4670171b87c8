package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/login-gateway/internal/store"
	"github.com/yourusername/login-gateway/internal/view"
)

const contentTypeHTML = "text/html; charset=utf-8"

// リダイレクトが効かない環境向けのフォールバックページ
const logoutFallbackHTML = `<!DOCTYPE html>
<html>
<head>
    <meta http-equiv="refresh" content="0;url=/login">
</head>
</html>
`

// Login は GET/POST /login のハンドラーです。
// 認証情報が揃っていれば認証（必要なら新規登録）してクッキーを発行し、
// 揃っていなければ受信クッキーからセッションを解決します。
// 有効なセッションが得られた場合はウェルカム画面、そうでなければログインフォームを返します。
func (m *Manager) Login(c *gin.Context) {
	ctx := c.Request.Context()

	// クエリ文字列・フォームボディの両方を受け付ける
	username := c.Request.FormValue("username")
	password := c.Request.FormValue("password")

	identity, _, err := m.Authenticate(ctx, username, password)
	switch {
	case err == nil:
		directive := Issue(identity.ID, m.now())
		c.Writer.Header().Add("Set-Cookie", directive.String())

	case errors.Is(err, ErrNoCredentials):
		// 認証情報なしはエラーではなく、クッキーによる解決へ切り替える
		if id := ResolveSessionID(c.GetHeader("Cookie")); id != "" {
			identity, err = m.store.FindByID(ctx, id)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				m.renderError(c)
				return
			}
		}

	default:
		m.renderError(c)
		return
	}

	var html string
	var renderErr error
	if identity != nil {
		html, renderErr = m.views.Welcome(identity.Username, identity.Password)
	} else {
		html, renderErr = m.views.LoginForm(m.now())
	}
	if renderErr != nil {
		m.renderError(c)
		return
	}

	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

// Logout は GET /logout のハンドラーです。
// セッションの有無にかかわらず常に失効クッキーとリダイレクトを返します。
// ユーザーストアには一切触れません（サーバー側のレコードは残る）。
func (m *Manager) Logout(c *gin.Context) {
	c.Writer.Header().Add("Set-Cookie", ClearDirective().String())
	c.Header("Location", "/login")
	c.Data(http.StatusFound, contentTypeHTML, []byte(logoutFallbackHTML))
}

// renderError は内部エラーを汎用のエラーページへ変換します。
// 生のエラーメッセージは外へ出しません。
func (m *Manager) renderError(c *gin.Context) {
	c.Data(http.StatusInternalServerError, contentTypeHTML,
		[]byte(view.ErrorPage("something went wrong, please try again later")))
}
