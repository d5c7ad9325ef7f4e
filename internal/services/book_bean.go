package services

import "github.com/yungbote/patchbridge-backend/internal/domain/library"

type BookBean struct {
	Title  string        `json:"title"`
	Author AuthorRefBean `json:"author"`
	ISBN   string        `json:"isbn"`
}

// AuthorRefBean names the referenced author by id only.
type AuthorRefBean struct {
	ID *uint `json:"id"`
}

func toBookBean(b *library.Book) BookBean {
	bean := BookBean{Title: b.Title, ISBN: b.ISBN}
	if b.AuthorID != nil {
		id := *b.AuthorID
		bean.Author.ID = &id
	}
	return bean
}

// writeBookBean sets the author by identity. The loaded Author is dropped so
// it is resolved again from AuthorID on save.
func writeBookBean(b *library.Book, bean BookBean) {
	b.Title = bean.Title
	b.ISBN = bean.ISBN
	b.AuthorID = nil
	if bean.Author.ID != nil {
		id := *bean.Author.ID
		b.AuthorID = &id
	}
	b.Author = nil
}
