package demo

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/login-gateway/internal/storage"
)

const uploadContentType = "text/html; charset=utf-8"

// UploadHandler は POST /cgi/upload のハンドラーを返します。
// multipart の file フィールドを受け取り、ローカルストレージへ保存します。
// 応答は元のCGIスクリプトと同じく常に小さなHTMLページです。
func UploadHandler(store *storage.Local, maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.Data(http.StatusOK, uploadContentType,
				[]byte("<h1>Error: No file field found in the form.</h1>\n"))
			return
		}
		if file.Filename == "" {
			c.Data(http.StatusOK, uploadContentType,
				[]byte("<h1>No file was uploaded.</h1>\n"))
			return
		}
		if maxSize > 0 && file.Size > maxSize {
			c.Data(http.StatusRequestEntityTooLarge, uploadContentType,
				[]byte("<h1>Error: File is too large.</h1>\n"))
			return
		}

		src, err := file.Open()
		if err != nil {
			c.Data(http.StatusOK, uploadContentType,
				[]byte("<h1>Error: Unable to save the file.</h1>\n"))
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.Data(http.StatusOK, uploadContentType,
				[]byte("<h1>Error: Unable to save the file.</h1>\n"))
			return
		}

		name, err := store.Save(file.Filename, data)
		if err != nil {
			c.Data(http.StatusOK, uploadContentType,
				[]byte("<h1>Error: Unable to save the file.</h1>\n"))
			return
		}

		detected := mimetype.Detect(data)
		body := fmt.Sprintf("<h1>File '%s' uploaded successfully!</h1>\n<p>Detected type: %s</p>\n",
			name, detected.String())
		c.Data(http.StatusOK, uploadContentType, []byte(body))
	}
}
