package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juriqh/masar-notes-buddy/pkg/response"
)

// BodyLimit rejects request bodies larger than maxBytes. Schedule photos
// arrive base64-encoded, so the limit must exceed the raw image size by
// roughly a third.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
				return
			}
		}
	}
}
