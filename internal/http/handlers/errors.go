package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/patchbridge-backend/internal/http/response"
	"github.com/yungbote/patchbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondError maps err to a status and writes the envelope. Server errors
// are logged with their cause since the client only sees a generic message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	_ = c.Error(err)
	ae := response.RespondAPIError(c, err)
	if ae != nil && ae.Status >= http.StatusInternalServerError && log != nil {
		log.Error("Request failed", append(ctxutil.LogFields(c.Request.Context()), "path", c.FullPath(), "error", err)...)
	}
}
