package services

import (
	"context"
	"fmt"

	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/patch"
	"github.com/yungbote/patchbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type BookService interface {
	GetBook(ctx context.Context, id uint) (*BookDTO, error)
	UpdateBook(ctx context.Context, id uint, doc *patch.Document) (patch.Outcome[BookDTO], error)
}

type bookService struct {
	log      *logger.Logger
	books    repos.BookRepo
	agg      domainagg.BookAggregate
	notifier ChangeNotifier
	pipeline *patch.Pipeline[*library.Book, BookBean, BookDTO]
}

func NewBookService(
	baseLog *logger.Logger,
	books repos.BookRepo,
	agg domainagg.BookAggregate,
	applier *patch.Applier,
	notifier ChangeNotifier,
) BookService {
	if notifier == nil {
		notifier = NewNopNotifier()
	}
	s := &bookService{
		log:      baseLog.With("service", "BookService"),
		books:    books,
		agg:      agg,
		notifier: notifier,
	}
	s.pipeline = &patch.Pipeline[*library.Book, BookBean, BookDTO]{
		Resource:   library.ResourceBook,
		Applier:    applier,
		Load:       s.load,
		ToBean:     toBookBean,
		Write:      writeBookBean,
		Save:       s.save,
		ToResponse: toBookDTO,
		OnSaved: func(ctx context.Context, b *library.Book, change patch.Change[BookBean]) {
			s.notifier.PatchApplied(ctx, library.ResourceBook, b.ID, change.Doc.Raw())
		},
	}
	return s
}

func (s *bookService) GetBook(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toBookDTO(b)
	return &dto, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uint, doc *patch.Document) (patch.Outcome[BookDTO], error) {
	out, err := s.pipeline.UpdateByID(ctx, id, doc)
	if err != nil {
		return out, err
	}
	s.log.Debug("Book patched", append(ctxutil.LogFields(ctx), "book_id", id, "changed", out.Changed)...)
	return out, nil
}

func (s *bookService) load(ctx context.Context, id uint) (*library.Book, error) {
	const op = "book.load"
	b, err := s.books.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if b == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("book not found: %d", id), nil)
	}
	return b, nil
}

func (s *bookService) save(ctx context.Context, b *library.Book, change patch.Change[BookBean]) (*library.Book, error) {
	event, err := newPatchEvent(ctx, library.ResourceBook, b.ID, change.Doc, change.Before, change.After)
	if err != nil {
		return nil, err
	}
	res, err := s.agg.SaveBook(ctx, domainagg.SaveBookInput{Book: b, Event: event})
	if err != nil {
		return nil, err
	}
	return res.Book, nil
}
