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

type AuthorService interface {
	GetAuthor(ctx context.Context, id uint) (*AuthorDTO, error)
	UpdateAuthor(ctx context.Context, id uint, doc *patch.Document) (patch.Outcome[AuthorDTO], error)
}

type authorService struct {
	log      *logger.Logger
	authors  repos.AuthorRepo
	agg      domainagg.AuthorAggregate
	notifier ChangeNotifier
	pipeline *patch.Pipeline[*library.Author, AuthorBean, AuthorDTO]
}

func NewAuthorService(
	baseLog *logger.Logger,
	authors repos.AuthorRepo,
	agg domainagg.AuthorAggregate,
	applier *patch.Applier,
	notifier ChangeNotifier,
) AuthorService {
	if notifier == nil {
		notifier = NewNopNotifier()
	}
	s := &authorService{
		log:      baseLog.With("service", "AuthorService"),
		authors:  authors,
		agg:      agg,
		notifier: notifier,
	}
	s.pipeline = &patch.Pipeline[*library.Author, AuthorBean, AuthorDTO]{
		Resource: library.ResourceAuthor,
		Applier:  applier,
		Load:     s.load,
		ToBean:   toAuthorBean,
		Write: func(a *library.Author, bean AuthorBean) {
			writeAuthorBean(a, bean)
		},
		Save:       s.save,
		ToResponse: toAuthorDTO,
		OnSaved: func(ctx context.Context, a *library.Author, change patch.Change[AuthorBean]) {
			s.notifier.PatchApplied(ctx, library.ResourceAuthor, a.ID, change.Doc.Raw())
		},
	}
	return s
}

func (s *authorService) GetAuthor(ctx context.Context, id uint) (*AuthorDTO, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toAuthorDTO(a)
	return &dto, nil
}

func (s *authorService) UpdateAuthor(ctx context.Context, id uint, doc *patch.Document) (patch.Outcome[AuthorDTO], error) {
	out, err := s.pipeline.UpdateByID(ctx, id, doc)
	if err != nil {
		return out, err
	}
	s.log.Debug("Author patched", append(ctxutil.LogFields(ctx), "author_id", id, "changed", out.Changed)...)
	return out, nil
}

func (s *authorService) load(ctx context.Context, id uint) (*library.Author, error) {
	const op = "author.load"
	a, err := s.authors.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if a == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("author not found: %d", id), nil)
	}
	return a, nil
}

func (s *authorService) save(ctx context.Context, a *library.Author, change patch.Change[AuthorBean]) (*library.Author, error) {
	event, err := newPatchEvent(ctx, library.ResourceAuthor, a.ID, change.Doc, change.Before, change.After)
	if err != nil {
		return nil, err
	}
	res, err := s.agg.SaveAuthor(ctx, domainagg.SaveAuthorInput{Author: a, Event: event})
	if err != nil {
		return nil, err
	}
	return res.Author, nil
}
