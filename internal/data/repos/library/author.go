package library

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type AuthorRepo interface {
	GetByID(dbc dbctx.Context, id uint) (*types.Author, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
	Save(dbc dbctx.Context, author *types.Author) error
	SaveBooks(dbc dbctx.Context, authorID uint, books []*types.Book) error
	DeleteBooksNotIn(dbc dbctx.Context, authorID uint, keep []uint) (int64, error)
}

type authorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	return &authorRepo{
		db:  db,
		log: baseLog.With("repo", "AuthorRepo"),
	}
}

// GetByID loads the author with its books ordered by id. Missing rows yield (nil, nil).
func (r *authorRepo) GetByID(dbc dbctx.Context, id uint) (*types.Author, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var out types.Author
	err := transaction.WithContext(dbc.Ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
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

func (r *authorRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Author{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save upserts the author's own columns. Books are written through SaveBooks.
func (r *authorRepo) Save(dbc dbctx.Context, author *types.Author) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if author == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Save(author).Error
}

// SaveBooks points every book at authorID and upserts it. Books without an id
// are inserted and receive one.
func (r *authorRepo) SaveBooks(dbc dbctx.Context, authorID uint, books []*types.Book) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	for _, b := range books {
		if b == nil {
			continue
		}
		owner := authorID
		b.AuthorID = &owner
		if err := transaction.WithContext(dbc.Ctx).
			Omit(clause.Associations).
			Save(b).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteBooksNotIn removes the author's books whose ids are not in keep.
// An empty keep removes every book the author owns.
func (r *authorRepo) DeleteBooksNotIn(dbc dbctx.Context, authorID uint, keep []uint) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Where("author_id = ?", authorID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	res := q.Delete(&types.Book{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
