package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/data/repos/audit"
	"github.com/yungbote/patchbridge-backend/internal/data/repos/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type AuthorRepo = library.AuthorRepo
type BookRepo = library.BookRepo

type PatchEventRepo = audit.PatchEventRepo

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	return library.NewAuthorRepo(db, baseLog)
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return library.NewBookRepo(db, baseLog)
}

func NewPatchEventRepo(db *gorm.DB, baseLog *logger.Logger) PatchEventRepo {
	return audit.NewPatchEventRepo(db, baseLog)
}

// Set bundles every repo the services and aggregates need.
type Set struct {
	Authors     AuthorRepo
	Books       BookRepo
	PatchEvents PatchEventRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Authors:     NewAuthorRepo(db, baseLog),
		Books:       NewBookRepo(db, baseLog),
		PatchEvents: NewPatchEventRepo(db, baseLog),
	}
}
