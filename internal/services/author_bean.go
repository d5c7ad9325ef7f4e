package services

import (
	"sort"

	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/patch"
)

// AuthorBean is the patchable view of an author. Email is deliberately absent.
type AuthorBean struct {
	Name  string         `json:"name"`
	Books []BookItemBean `json:"books"`
}

// BookItemBean is an owned book inside AuthorBean. ID is nil for books the
// patch adds.
type BookItemBean struct {
	ID    *uint  `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// toAuthorBean projects books in ascending id order so that /books/N is stable.
func toAuthorBean(a *library.Author) AuthorBean {
	books := make([]*library.Book, 0, len(a.Books))
	for _, b := range a.Books {
		if b != nil {
			books = append(books, b)
		}
	}
	sort.SliceStable(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	bean := AuthorBean{Name: a.Name, Books: make([]BookItemBean, 0, len(books))}
	for _, b := range books {
		item := BookItemBean{Title: b.Title, ISBN: b.ISBN}
		if b.Persisted() {
			id := b.ID
			item.ID = &id
		}
		bean.Books = append(bean.Books, item)
	}
	return bean
}

// writeAuthorBean copies the patched name onto a and reconciles its books.
// Books removed from the bean drop out of a.Books; persistence deletes them.
func writeAuthorBean(a *library.Author, bean AuthorBean) patch.ReconcileResult[*library.Book] {
	a.Name = bean.Name
	res := patch.Reconcile(a.Books, bean.Books, authorBooksSpec(a))
	a.Books = res.Kept
	return res
}

func authorBooksSpec(a *library.Author) patch.ReconcileSpec[*library.Book, BookItemBean, uint] {
	return patch.ReconcileSpec[*library.Book, BookItemBean, uint]{
		EntityKey: func(b *library.Book) (uint, bool) {
			if b == nil || !b.Persisted() {
				return 0, false
			}
			return b.ID, true
		},
		BeanKey: func(item BookItemBean) (uint, bool) {
			if item.ID == nil || *item.ID == 0 {
				return 0, false
			}
			return *item.ID, true
		},
		New: func(BookItemBean) *library.Book {
			owner := a.ID
			return &library.Book{AuthorID: &owner}
		},
		Update: func(b *library.Book, item BookItemBean) {
			b.Title = item.Title
			b.ISBN = item.ISBN
		},
	}
}
