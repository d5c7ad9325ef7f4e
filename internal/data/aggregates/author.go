package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
)

type AuthorAggregateDeps struct {
	Base BaseDeps

	Authors     repos.AuthorRepo
	PatchEvents repos.PatchEventRepo
}

type authorAggregate struct {
	deps AuthorAggregateDeps
}

func NewAuthorAggregate(deps AuthorAggregateDeps) domainagg.AuthorAggregate {
	deps.Base = deps.Base.withDefaults()
	return &authorAggregate{deps: deps}
}

func (a *authorAggregate) Contract() domainagg.Contract {
	return domainagg.AuthorAggregateContract
}

func (a *authorAggregate) SaveAuthor(ctx context.Context, in domainagg.SaveAuthorInput) (domainagg.SaveAuthorResult, error) {
	const op = "Library.Author.Save"
	var out domainagg.SaveAuthorResult
	if in.Author == nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing author", nil)
	}
	if in.Author.ID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "author has no id", nil)
	}
	if a.deps.Authors == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "author aggregate repos not configured", nil)
	}

	author := in.Author
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.deps.Authors.Exists(dbc, author.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("author not found: %d", author.ID), nil)
		}
		for _, b := range author.Books {
			if b != nil && b.Persisted() && b.AuthorID != nil && !b.OwnedBy(author.ID) {
				return InvariantError(fmt.Sprintf("book %d belongs to another author", b.ID))
			}
		}
		if err := a.deps.Authors.Save(dbc, author); err != nil {
			return err
		}
		if err := a.deps.Authors.SaveBooks(dbc, author.ID, author.Books); err != nil {
			return err
		}
		removed, err := a.deps.Authors.DeleteBooksNotIn(dbc, author.ID, author.BookIDs())
		if err != nil {
			return err
		}
		if in.Event != nil {
			if a.deps.PatchEvents == nil {
				return domainagg.NewError(domainagg.CodeInternal, op, "patch event repo not configured", nil)
			}
			in.Event.ResourceID = author.ID
			if _, err := a.deps.PatchEvents.Create(dbc, []*library.PatchEvent{in.Event}); err != nil {
				return err
			}
		}
		out = domainagg.SaveAuthorResult{
			Author:       author,
			BooksSaved:   len(author.Books),
			BooksRemoved: removed,
		}
		return nil
	})
	return out, err
}
