package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/domain/library"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&library.Author{},
		&library.Book{},
		&library.PatchEvent{},
	)
}
