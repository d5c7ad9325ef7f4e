package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/patchbridge-backend/internal/http/response"
)

const ContentTypeJSONPatch = "application/json-patch+json"

// RequireContentType rejects requests whose media type is not one of allowed with 415.
func RequireContentType(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := strings.ToLower(strings.TrimSpace(c.ContentType()))
		for _, a := range allowed {
			if got == a {
				c.Next()
				return
			}
		}
		response.RespondError(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
			fmt.Errorf("content type %q not supported, use %s", got, strings.Join(allowed, " or ")))
	}
}

// LimitBody caps the request body at n bytes.
func LimitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
