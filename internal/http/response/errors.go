package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/patchbridge-backend/internal/platform/apierr"
)

// RespondAPIError writes err through the status/code mapping in apierr and
// returns the mapped error.
func RespondAPIError(c *gin.Context, err error) *apierr.Error {
	ae := apierr.FromError(err)
	if ae == nil {
		return nil
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
	return ae
}
