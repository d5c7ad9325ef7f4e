package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/patchbridge-backend/internal/http/response"
	"github.com/yungbote/patchbridge-backend/internal/patch"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
	"github.com/yungbote/patchbridge-backend/internal/services"
)

type AuthorHandler struct {
	log     *logger.Logger
	authors services.AuthorService
}

func NewAuthorHandler(log *logger.Logger, authors services.AuthorService) *AuthorHandler {
	return &AuthorHandler{log: log.With("handler", "AuthorHandler"), authors: authors}
}

// GET /api/v1/authors/:id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_author_id", err)
		return
	}
	dto, err := h.authors.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.RespondOK(c, dto)
}

// PATCH /api/v1/authors/:id
func (h *AuthorHandler) PatchAuthor(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_author_id", err)
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "invalid_body", err)
		return
	}
	doc, err := patch.Decode(raw)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out, err := h.authors.UpdateAuthor(c.Request.Context(), id, doc)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !out.Changed {
		response.RespondNotModified(c)
		return
	}
	response.RespondOK(c, out.Result)
}
