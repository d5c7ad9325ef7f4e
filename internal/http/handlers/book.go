package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/patchbridge-backend/internal/http/response"
	"github.com/yungbote/patchbridge-backend/internal/patch"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
	"github.com/yungbote/patchbridge-backend/internal/services"
)

type BookHandler struct {
	log   *logger.Logger
	books services.BookService
}

func NewBookHandler(log *logger.Logger, books services.BookService) *BookHandler {
	return &BookHandler{log: log.With("handler", "BookHandler"), books: books}
}

// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_book_id", err)
		return
	}
	dto, err := h.books.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.RespondOK(c, dto)
}

// PATCH /api/v1/books/:id
func (h *BookHandler) PatchBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_book_id", err)
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
	out, err := h.books.UpdateBook(c.Request.Context(), id, doc)
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
