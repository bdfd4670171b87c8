// Package demo はゲートウェイ動作確認用の小さなハンドラー群を提供します。
// いずれも恒久的なサーバー側状態を持ちません。
package demo

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionKeyHits = "hits"

// VisitCounter は GET /cgi/counter のハンドラーです。
// 訪問回数を署名付きセッションクッキーで数え、"visit #N" を返します。
func VisitCounter(c *gin.Context) {
	session := sessions.Default(c)

	hits := 1
	if v, ok := session.Get(sessionKeyHits).(int); ok {
		hits = v + 1
	}
	session.Set(sessionKeyHits, hits)

	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "failed to save session\n")
		return
	}

	c.String(http.StatusOK, "visit #%d\n", hits)
}
