package demo

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// EnvDump は GET /cgi/env のハンドラーです。
// CGIのメタ変数に相当する値をリクエストから組み立て、key=value 形式で列挙します。
func EnvDump(c *gin.Context) {
	req := c.Request

	vars := map[string]string{
		"REQUEST_METHOD":  req.Method,
		"SCRIPT_NAME":     req.URL.Path,
		"QUERY_STRING":    req.URL.RawQuery,
		"SERVER_PROTOCOL": req.Proto,
		"REMOTE_ADDR":     c.ClientIP(),
		"CONTENT_LENGTH":  strconv.FormatInt(req.ContentLength, 10),
		"CONTENT_TYPE":    req.Header.Get("Content-Type"),
	}

	// リクエストヘッダーは HTTP_* として展開する
	for name, values := range req.Header {
		key := "HTTP_" + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
		vars[key] = strings.Join(values, ", ")
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(vars[k])
		b.WriteString("\n")
	}

	c.String(http.StatusOK, b.String())
}
