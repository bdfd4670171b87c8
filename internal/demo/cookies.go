package demo

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CookieCounter は GET /cgi/cookies のハンドラーです。
// 生のクッキー n を読み取ってインクリメントし、そのまま再発行します。
// クッキーの値はクライアントから読める平文のままです（デモ用途）。
func CookieCounter(c *gin.Context) {
	n := 0
	if v, err := c.Cookie("n"); err == nil {
		if parsed, parseErr := strconv.Atoi(v); parseErr == nil {
			n = parsed
		}
	}
	n++

	c.Writer.Header().Add("Set-Cookie", fmt.Sprintf("n=%d; Path=/", n))
	c.String(http.StatusOK, "n = %d\n", n)
}
