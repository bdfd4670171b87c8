package demo

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRecurseCount = 600

// RecurseHandler は GET /cgi/index のハンドラーを返します。
// count をひとつ減らした値で自分自身をHTTP経由で呼び出し、0で停止します。
// ゲートウェイが連鎖するリクエストを捌けるかを確認するためのデモです。
func RecurseHandler(baseURL string, client *http.Client) gin.HandlerFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(c *gin.Context) {
		count := defaultRecurseCount
		if v := c.Query("count"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				count = parsed
			}
		}

		var b strings.Builder
		b.WriteString("<html><body>\n")
		fmt.Fprintf(&b, "<p>Count: %d</p>\n", count)

		if count > 0 {
			next := count - 1
			nextURL := fmt.Sprintf("%s?count=%d", baseURL, next)
			fmt.Fprintf(&b, "<p>Calling myself with count=%d: %s</p>\n", next, nextURL)

			resp, err := client.Get(nextURL)
			if err != nil {
				b.WriteString("<p>Error calling myself: request failed</p>\n")
			} else {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				b.WriteString("<p>Called myself successfully.</p>\n")
			}
		} else {
			b.WriteString("<p>Reached zero count, stopping recursion.</p>\n")
		}

		b.WriteString("</body></html>\n")
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
	}
}
