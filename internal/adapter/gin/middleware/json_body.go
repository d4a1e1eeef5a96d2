package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DefaultBodyLimit caps parsed JSON bodies at 100 KiB.
const DefaultBodyLimit int64 = 100 << 10

// BodyKey is the gin context key holding the decoded JSON body.
const BodyKey = "json_body"

// JSONBody decodes application/json request bodies on every route and stores
// the result under BodyKey. Malformed JSON is rejected with 400 and bodies
// over limit with 413. Requests without a JSON body pass through unchanged.
func JSONBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(c.ContentType())
		if err != nil || mediaType != binding.MIMEJSON {
			c.Next()
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"error":   "payload_too_large",
					"message": "request body exceeds the size limit",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_body",
				"message": "request body could not be read",
			})
			return
		}

		// Unmarshal rejects trailing content after the first value.
		var body any
		if err := json.Unmarshal(raw, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_json",
				"message": "request body is not valid JSON",
			})
			return
		}

		// later ShouldBindBodyWith calls reuse the bytes already read
		c.Set(gin.BodyBytesKey, raw)
		c.Set(BodyKey, body)
		c.Next()
	}
}
