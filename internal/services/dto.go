package services

import (
	"sort"

	"github.com/yungbote/patchbridge-backend/internal/domain/library"
)

type AuthorDTO struct {
	ID    uint             `json:"id"`
	Name  string           `json:"name"`
	Books []BookSummaryDTO `json:"books"`
}

type BookSummaryDTO struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

type BookDTO struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	ISBN       string `json:"isbn"`
	AuthorID   *uint  `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
}

func toAuthorDTO(a *library.Author) AuthorDTO {
	out := AuthorDTO{ID: a.ID, Name: a.Name, Books: make([]BookSummaryDTO, 0, len(a.Books))}
	for _, b := range a.Books {
		if b == nil {
			continue
		}
		out.Books = append(out.Books, BookSummaryDTO{ID: b.ID, Title: b.Title, ISBN: b.ISBN})
	}
	sort.SliceStable(out.Books, func(i, j int) bool { return out.Books[i].ID < out.Books[j].ID })
	return out
}

func toBookDTO(b *library.Book) BookDTO {
	out := BookDTO{ID: b.ID, Title: b.Title, ISBN: b.ISBN, AuthorID: b.AuthorID}
	if b.Author != nil {
		out.AuthorName = b.Author.Name
	}
	return out
}
