package library

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type BookRepo interface {
	GetByID(dbc dbctx.Context, id uint) (*types.Book, error)
	ListByAuthor(dbc dbctx.Context, authorID uint) ([]*types.Book, error)
	Save(dbc dbctx.Context, book *types.Book) error
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{
		db:  db,
		log: baseLog.With("repo", "BookRepo"),
	}
}

// GetByID loads the book with its author reference. Missing rows yield (nil, nil).
func (r *bookRepo) GetByID(dbc dbctx.Context, id uint) (*types.Book, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var out types.Book
	err := transaction.WithContext(dbc.Ctx).
		Preload("Author").
		Where("id = ?", id).
		Limit(1).
		Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *bookRepo) ListByAuthor(dbc dbctx.Context, authorID uint) ([]*types.Book, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Book
	if authorID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts the book's columns, author_id included. The Author association is never written.
func (r *bookRepo) Save(dbc dbctx.Context, book *types.Book) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if book == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Save(book).Error
}
