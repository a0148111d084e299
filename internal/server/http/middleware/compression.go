package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unpacks gzip request bodies and caps what a handler can read.
// The cap applies to the decompressed stream; limit <= 0 disables it.
func DecompressRequest(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.Request.Body
		if body == nil || body == http.NoBody {
			c.Next()
			return
		}

		if isGzip(c.GetHeader("Content-Encoding")) {
			zr, err := gzip.NewReader(body)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			defer zr.Close()
			defer body.Close()

			c.Request.Body = io.NopCloser(zr)
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		}

		if limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

func isGzip(encoding string) bool {
	for _, part := range strings.Split(encoding, ",") {
		if strings.EqualFold(strings.TrimSpace(part), "gzip") {
			return true
		}
	}
	return false
}
