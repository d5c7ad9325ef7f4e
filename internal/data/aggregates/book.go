package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
)

type BookAggregateDeps struct {
	Base BaseDeps

	Books       repos.BookRepo
	Authors     repos.AuthorRepo
	PatchEvents repos.PatchEventRepo
}

type bookAggregate struct {
	deps BookAggregateDeps
}

func NewBookAggregate(deps BookAggregateDeps) domainagg.BookAggregate {
	deps.Base = deps.Base.withDefaults()
	return &bookAggregate{deps: deps}
}

func (a *bookAggregate) Contract() domainagg.Contract {
	return domainagg.BookAggregateContract
}

func (a *bookAggregate) SaveBook(ctx context.Context, in domainagg.SaveBookInput) (domainagg.SaveBookResult, error) {
	const op = "Library.Book.Save"
	var out domainagg.SaveBookResult
	if in.Book == nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing book", nil)
	}
	if in.Book.ID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "book has no id", nil)
	}
	if a.deps.Books == nil || a.deps.Authors == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "book aggregate repos not configured", nil)
	}

	book := in.Book
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		current, err := a.deps.Books.GetByID(dbc, book.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("book not found: %d", book.ID), nil)
		}
		if book.AuthorID != nil {
			ok, err := a.deps.Authors.Exists(dbc, *book.AuthorID)
			if err != nil {
				return err
			}
			if !ok {
				return PreconditionError(fmt.Sprintf("author %d does not exist", *book.AuthorID))
			}
		}
		// the author is a reference; its row is never written from here
		book.Author = nil
		if err := a.deps.Books.Save(dbc, book); err != nil {
			return err
		}
		saved, err := a.deps.Books.GetByID(dbc, book.ID)
		if err != nil {
			return err
		}
		if saved == nil {
			return InvariantError(fmt.Sprintf("book %d vanished after save", book.ID))
		}
		if in.Event != nil {
			if a.deps.PatchEvents == nil {
				return domainagg.NewError(domainagg.CodeInternal, op, "patch event repo not configured", nil)
			}
			in.Event.ResourceID = book.ID
			if _, err := a.deps.PatchEvents.Create(dbc, []*library.PatchEvent{in.Event}); err != nil {
				return err
			}
		}
		out = domainagg.SaveBookResult{Book: saved}
		return nil
	})
	return out, err
}
